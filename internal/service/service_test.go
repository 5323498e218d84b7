package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"rentdesk/internal/store"
)

// newTestServices wires the full service set over an ephemeral in-memory
// document store with no synthetic latency. First reads seed the demo
// dataset: ASSET-001..003 and CUST-001..002.
func newTestServices(t *testing.T) (*Services, store.DocumentStore) {
	t.Helper()
	docs, err := store.Open(":memory:", 0)
	require.NoError(t, err)
	return New(docs, 24*time.Hour), docs
}

func rentSeedAsset(t *testing.T, svcs *Services, assetID, customerID string) {
	t.Helper()
	err := svcs.Rentals.RentAsset(context.Background(), RentAssetParams{
		AssetID:      assetID,
		CustomerID:   customerID,
		Rate:         50,
		BillingCycle: "day",
		OutDate:      time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
}
