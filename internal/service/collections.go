package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"rentdesk/internal/domain"
	"rentdesk/internal/store"
)

// newID generates a prefixed entity id, e.g. "ASSET-4F2A91C0". The short
// form keeps ids typeable and barcode-friendly.
func newID(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, strings.ToUpper(uuid.NewString()[:8]))
}

// Collection loaders. A read miss seeds the initial dataset, so a fresh
// database starts with a small demo catalog rather than an empty screen.

func loadAssets(ctx context.Context, docs store.DocumentStore) ([]domain.Asset, error) {
	var assets []domain.Asset
	if err := docs.Get(ctx, store.KeyAssets, &assets, domain.SeedAssets()); err != nil {
		return nil, fmt.Errorf("failed to load assets: %w", err)
	}
	return assets, nil
}

func loadCustomers(ctx context.Context, docs store.DocumentStore) ([]domain.Customer, error) {
	var customers []domain.Customer
	if err := docs.Get(ctx, store.KeyCustomers, &customers, domain.SeedCustomers()); err != nil {
		return nil, fmt.Errorf("failed to load customers: %w", err)
	}
	return customers, nil
}

func loadProductTypes(ctx context.Context, docs store.DocumentStore) ([]string, error) {
	var types []string
	if err := docs.Get(ctx, store.KeyProductTypes, &types, domain.SeedProductTypes()); err != nil {
		return nil, fmt.Errorf("failed to load product types: %w", err)
	}
	return types, nil
}
