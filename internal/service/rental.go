package service

import (
	"context"
	"log/slog"
	"time"

	"rentdesk/internal/domain"
	"rentdesk/internal/logger"
	"rentdesk/internal/store"
)

type rentalService struct {
	docs store.DocumentStore
	log  *slog.Logger
	now  func() time.Time
}

func NewRentalService(docs store.DocumentStore) RentalService {
	return &rentalService{docs: docs, log: logger.WithService("rentals"), now: time.Now}
}

func (s *rentalService) RentAsset(ctx context.Context, params RentAssetParams) error {
	assets, err := loadAssets(ctx, s.docs)
	if err != nil {
		return err
	}

	idx := findAsset(assets, params.AssetID)
	if idx < 0 {
		// Lenient by contract: the caller only offers existing assets.
		s.log.Warn("Rent requested for unknown asset", "asset_id", params.AssetID)
		return nil
	}
	if assets[idx].OpenRental() != nil {
		return domain.ErrOpenRentalExists
	}

	rental := domain.Rental{
		ID:            newID("RENT"),
		CustomerID:    params.CustomerID,
		OutDate:       params.OutDate,
		InDate:        nil,
		Rate:          params.Rate,
		BillingCycle:  params.BillingCycle,
		Payments:      []domain.Payment{},
		AgreementCopy: params.AgreementCopy,
	}
	assets[idx].RentalHistory = append(assets[idx].RentalHistory, rental)
	assets[idx].Status = domain.AssetStatusRented

	if err := s.docs.Set(ctx, store.KeyAssets, assets); err != nil {
		return err
	}
	s.log.Info("Asset rented", "asset_id", params.AssetID, "rental_id", rental.ID, "customer_id", params.CustomerID)
	return nil
}

func (s *rentalService) ReturnAsset(ctx context.Context, assetID string) error {
	assets, err := loadAssets(ctx, s.docs)
	if err != nil {
		return err
	}

	idx := findAsset(assets, assetID)
	if idx < 0 {
		s.log.Warn("Return requested for unknown asset", "asset_id", assetID)
		return nil
	}
	open := assets[idx].OpenRental()
	if open == nil {
		s.log.Warn("Return requested with no open rental", "asset_id", assetID)
		return nil
	}

	in := s.now()
	open.InDate = &in
	assets[idx].Status = domain.AssetStatusAvailable

	if err := s.docs.Set(ctx, store.KeyAssets, assets); err != nil {
		return err
	}
	s.log.Info("Asset returned", "asset_id", assetID, "rental_id", open.ID)
	return nil
}

func (s *rentalService) AddPayment(ctx context.Context, params AddPaymentParams) error {
	if params.Amount <= 0 {
		return domain.ErrNonPositiveAmount
	}

	assets, err := loadAssets(ctx, s.docs)
	if err != nil {
		return err
	}

	idx := findAsset(assets, params.AssetID)
	if idx < 0 {
		s.log.Warn("Payment for unknown asset", "asset_id", params.AssetID)
		return nil
	}
	history := assets[idx].RentalHistory
	var rental *domain.Rental
	for i := range history {
		if history[i].ID == params.RentalID {
			rental = &history[i]
			break
		}
	}
	if rental == nil {
		s.log.Warn("Payment for unknown rental", "asset_id", params.AssetID, "rental_id", params.RentalID)
		return nil
	}

	rental.Payments = append(rental.Payments, domain.Payment{
		ID:     newID("PAY"),
		Amount: params.Amount,
		Date:   params.Date,
		Mode:   params.Mode,
	})

	if err := s.docs.Set(ctx, store.KeyAssets, assets); err != nil {
		return err
	}
	s.log.Info("Payment recorded", "asset_id", params.AssetID, "rental_id", params.RentalID, "amount", params.Amount)
	return nil
}

func findAsset(assets []domain.Asset, id string) int {
	for i := range assets {
		if assets[i].ID == id {
			return i
		}
	}
	return -1
}
