package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentdesk/internal/domain"
)

func TestProductTypeAdd(t *testing.T) {
	ctx := context.Background()

	t.Run("Adds and trims", func(t *testing.T) {
		svcs, _ := newTestServices(t)
		types, err := svcs.ProductTypes.Add(ctx, "  Generators ")
		require.NoError(t, err)
		assert.Contains(t, types, "Generators")
	})

	t.Run("Rejects empty name", func(t *testing.T) {
		svcs, _ := newTestServices(t)
		_, err := svcs.ProductTypes.Add(ctx, "   ")
		assert.ErrorIs(t, err, domain.ErrEmptyProductType)
	})

	t.Run("Rejects duplicates case-insensitively", func(t *testing.T) {
		svcs, _ := newTestServices(t)
		_, err := svcs.ProductTypes.Add(ctx, "cameras")
		assert.ErrorIs(t, err, domain.ErrDuplicateProductType)
	})
}

func TestProductTypeDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("Rejected while an asset references the type", func(t *testing.T) {
		svcs, _ := newTestServices(t)
		_, err := svcs.ProductTypes.Delete(ctx, "Cameras")
		assert.ErrorIs(t, err, domain.ErrProductTypeInUse)
	})

	t.Run("Deletes an unreferenced type", func(t *testing.T) {
		svcs, _ := newTestServices(t)
		_, err := svcs.ProductTypes.Add(ctx, "Generators")
		require.NoError(t, err)

		types, err := svcs.ProductTypes.Delete(ctx, "Generators")
		require.NoError(t, err)
		assert.NotContains(t, types, "Generators")
	})
}
