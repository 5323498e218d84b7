package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentdesk/internal/domain"
)

func findByID(t *testing.T, assets []domain.Asset, id string) *domain.Asset {
	t.Helper()
	for i := range assets {
		if assets[i].ID == id {
			return &assets[i]
		}
	}
	t.Fatalf("asset %s not found", id)
	return nil
}

func TestRentAsset(t *testing.T) {
	ctx := context.Background()

	t.Run("Opens exactly one rental and flips status", func(t *testing.T) {
		svcs, _ := newTestServices(t)
		rentSeedAsset(t, svcs, "ASSET-001", "CUST-001")

		assets, err := svcs.Assets.List(ctx)
		require.NoError(t, err)
		a := findByID(t, assets, "ASSET-001")

		assert.Equal(t, domain.AssetStatusRented, a.Status)
		require.Len(t, a.RentalHistory, 1)
		r := a.RentalHistory[0]
		assert.Nil(t, r.InDate)
		assert.Equal(t, "CUST-001", r.CustomerID)
		assert.Equal(t, 50.0, r.Rate)
		assert.Equal(t, domain.BillingCycleDay, r.BillingCycle)
		assert.Empty(t, r.Payments)
	})

	t.Run("Second open rental is rejected", func(t *testing.T) {
		svcs, _ := newTestServices(t)
		rentSeedAsset(t, svcs, "ASSET-001", "CUST-001")

		err := svcs.Rentals.RentAsset(ctx, RentAssetParams{
			AssetID: "ASSET-001", CustomerID: "CUST-002",
			Rate: 10, BillingCycle: domain.BillingCycleDay, OutDate: time.Now(),
		})
		assert.ErrorIs(t, err, domain.ErrOpenRentalExists)

		assets, err := svcs.Assets.List(ctx)
		require.NoError(t, err)
		assert.Len(t, findByID(t, assets, "ASSET-001").RentalHistory, 1)
	})

	t.Run("Unknown asset is a silent no-op", func(t *testing.T) {
		svcs, _ := newTestServices(t)
		err := svcs.Rentals.RentAsset(ctx, RentAssetParams{
			AssetID: "ASSET-999", CustomerID: "CUST-001",
			Rate: 10, BillingCycle: domain.BillingCycleDay, OutDate: time.Now(),
		})
		assert.NoError(t, err)
	})
}

func TestReturnAsset(t *testing.T) {
	ctx := context.Background()

	t.Run("Closes the open rental", func(t *testing.T) {
		svcs, _ := newTestServices(t)
		rentSeedAsset(t, svcs, "ASSET-001", "CUST-001")
		require.NoError(t, svcs.Rentals.ReturnAsset(ctx, "ASSET-001"))

		assets, err := svcs.Assets.List(ctx)
		require.NoError(t, err)
		a := findByID(t, assets, "ASSET-001")
		assert.Equal(t, domain.AssetStatusAvailable, a.Status)
		require.Len(t, a.RentalHistory, 1)
		assert.NotNil(t, a.RentalHistory[0].InDate)
		assert.Nil(t, a.OpenRental())
	})

	t.Run("No open rental is a no-op", func(t *testing.T) {
		svcs, _ := newTestServices(t)
		assert.NoError(t, svcs.Rentals.ReturnAsset(ctx, "ASSET-002"))
		assert.NoError(t, svcs.Rentals.ReturnAsset(ctx, "ASSET-999"))
	})

	t.Run("Asset can be rented again after return", func(t *testing.T) {
		svcs, _ := newTestServices(t)
		rentSeedAsset(t, svcs, "ASSET-001", "CUST-001")
		require.NoError(t, svcs.Rentals.ReturnAsset(ctx, "ASSET-001"))
		rentSeedAsset(t, svcs, "ASSET-001", "CUST-002")

		assets, err := svcs.Assets.List(ctx)
		require.NoError(t, err)
		a := findByID(t, assets, "ASSET-001")
		assert.Len(t, a.RentalHistory, 2)
		require.NotNil(t, a.OpenRental())
		assert.Equal(t, "CUST-002", a.OpenRental().CustomerID)
	})
}

func TestAddPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("Appends to the ledger in order", func(t *testing.T) {
		svcs, _ := newTestServices(t)
		rentSeedAsset(t, svcs, "ASSET-001", "CUST-001")

		assets, err := svcs.Assets.List(ctx)
		require.NoError(t, err)
		rentalID := findByID(t, assets, "ASSET-001").RentalHistory[0].ID

		for _, amount := range []float64{40, 25} {
			err := svcs.Rentals.AddPayment(ctx, AddPaymentParams{
				AssetID: "ASSET-001", RentalID: rentalID,
				Amount: amount, Date: time.Now(), Mode: domain.PaymentModeCash,
			})
			require.NoError(t, err)
		}

		assets, err = svcs.Assets.List(ctx)
		require.NoError(t, err)
		payments := findByID(t, assets, "ASSET-001").RentalHistory[0].Payments
		require.Len(t, payments, 2)
		assert.Equal(t, 40.0, payments[0].Amount)
		assert.Equal(t, 25.0, payments[1].Amount)
	})

	t.Run("Payments allowed on a closed rental", func(t *testing.T) {
		svcs, _ := newTestServices(t)
		rentSeedAsset(t, svcs, "ASSET-001", "CUST-001")
		require.NoError(t, svcs.Rentals.ReturnAsset(ctx, "ASSET-001"))

		assets, err := svcs.Assets.List(ctx)
		require.NoError(t, err)
		rentalID := findByID(t, assets, "ASSET-001").RentalHistory[0].ID

		err = svcs.Rentals.AddPayment(ctx, AddPaymentParams{
			AssetID: "ASSET-001", RentalID: rentalID,
			Amount: 100, Date: time.Now(), Mode: domain.PaymentModeBankTransfer,
		})
		require.NoError(t, err)
	})

	t.Run("Non-positive amount is rejected", func(t *testing.T) {
		svcs, _ := newTestServices(t)
		err := svcs.Rentals.AddPayment(ctx, AddPaymentParams{
			AssetID: "ASSET-001", RentalID: "RENT-X", Amount: 0,
		})
		assert.ErrorIs(t, err, domain.ErrNonPositiveAmount)
	})

	t.Run("Unknown asset or rental is a silent no-op", func(t *testing.T) {
		svcs, _ := newTestServices(t)
		assert.NoError(t, svcs.Rentals.AddPayment(ctx, AddPaymentParams{
			AssetID: "ASSET-999", RentalID: "RENT-X", Amount: 10,
		}))
		assert.NoError(t, svcs.Rentals.AddPayment(ctx, AddPaymentParams{
			AssetID: "ASSET-001", RentalID: "RENT-X", Amount: 10,
		}))
	})
}
