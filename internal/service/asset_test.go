package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentdesk/internal/domain"
)

func TestAssetCRUD(t *testing.T) {
	ctx := context.Background()
	svcs, _ := newTestServices(t)

	added, err := svcs.Assets.Add(ctx, domain.Asset{
		Name:         "Pressure Washer",
		ProductType:  "Cleaning",
		Make:         "WashCo",
		Model:        "PW-2000",
		SerialNumber: "WC-PW-555",
		PurchaseDate: time.Date(2023, time.August, 1, 0, 0, 0, 0, time.UTC),
		Rate:         35,
		BillingCycle: domain.BillingCycleDay,
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(added.ID, "ASSET-"))
	assert.Equal(t, domain.AssetStatusAvailable, added.Status)
	assert.NotNil(t, added.Photos)
	assert.NotNil(t, added.RentalHistory)

	added.Rate = 40
	_, err = svcs.Assets.Update(ctx, *added)
	require.NoError(t, err)

	assets, err := svcs.Assets.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 40.0, findByID(t, assets, added.ID).Rate)

	// Delete does not cascade into anything else.
	require.NoError(t, svcs.Assets.Delete(ctx, added.ID))
	assets, err = svcs.Assets.List(ctx)
	require.NoError(t, err)
	assert.Len(t, assets, 3)
}

func TestCustomerCRUD(t *testing.T) {
	ctx := context.Background()
	svcs, _ := newTestServices(t)

	added, err := svcs.Customers.Add(ctx, domain.Customer{
		Name:  "Acme Rentals",
		Email: "ops@acme.test",
		Phone: "555-0100",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(added.ID, "CUST-"))

	added.Phone2 = "555-0101"
	_, err = svcs.Customers.Update(ctx, *added)
	require.NoError(t, err)

	customers, err := svcs.Customers.List(ctx)
	require.NoError(t, err)
	assert.Len(t, customers, 3)

	require.NoError(t, svcs.Customers.Delete(ctx, added.ID))
	customers, err = svcs.Customers.List(ctx)
	require.NoError(t, err)
	assert.Len(t, customers, 2)
}

func TestHasRentalHistory(t *testing.T) {
	ctx := context.Background()
	svcs, _ := newTestServices(t)

	has, err := svcs.Customers.HasRentalHistory(ctx, "CUST-001")
	require.NoError(t, err)
	assert.False(t, has)

	rentSeedAsset(t, svcs, "ASSET-001", "CUST-001")

	has, err = svcs.Customers.HasRentalHistory(ctx, "CUST-001")
	require.NoError(t, err)
	assert.True(t, has)

	// Closing the rental keeps the reference; history is never deleted.
	require.NoError(t, svcs.Rentals.ReturnAsset(ctx, "ASSET-001"))
	has, err = svcs.Customers.HasRentalHistory(ctx, "CUST-001")
	require.NoError(t, err)
	assert.True(t, has)
}
