package service

import (
	"context"
	"log/slog"

	"rentdesk/internal/domain"
	"rentdesk/internal/logger"
	"rentdesk/internal/store"
)

type assetService struct {
	docs store.DocumentStore
	log  *slog.Logger
}

func NewAssetService(docs store.DocumentStore) AssetService {
	return &assetService{docs: docs, log: logger.WithService("assets")}
}

func (s *assetService) List(ctx context.Context) ([]domain.Asset, error) {
	return loadAssets(ctx, s.docs)
}

func (s *assetService) Add(ctx context.Context, asset domain.Asset) (*domain.Asset, error) {
	assets, err := loadAssets(ctx, s.docs)
	if err != nil {
		return nil, err
	}

	asset.ID = newID("ASSET")
	if asset.Photos == nil {
		asset.Photos = []string{}
	}
	if asset.RentalHistory == nil {
		asset.RentalHistory = []domain.Rental{}
	}
	if asset.Status == "" {
		asset.Status = domain.AssetStatusAvailable
	}

	assets = append(assets, asset)
	if err := s.docs.Set(ctx, store.KeyAssets, assets); err != nil {
		return nil, err
	}
	s.log.Info("Asset added", "id", asset.ID, "name", asset.Name)
	return &asset, nil
}

func (s *assetService) Update(ctx context.Context, asset domain.Asset) (*domain.Asset, error) {
	assets, err := loadAssets(ctx, s.docs)
	if err != nil {
		return nil, err
	}

	for i := range assets {
		if assets[i].ID == asset.ID {
			assets[i] = asset
			break
		}
	}
	if err := s.docs.Set(ctx, store.KeyAssets, assets); err != nil {
		return nil, err
	}
	return &asset, nil
}

func (s *assetService) Delete(ctx context.Context, assetID string) error {
	assets, err := loadAssets(ctx, s.docs)
	if err != nil {
		return err
	}

	kept := assets[:0]
	for _, a := range assets {
		if a.ID != assetID {
			kept = append(kept, a)
		}
	}
	if err := s.docs.Set(ctx, store.KeyAssets, kept); err != nil {
		return err
	}
	s.log.Info("Asset deleted", "id", assetID)
	return nil
}
