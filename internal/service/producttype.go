package service

import (
	"context"
	"log/slog"
	"strings"

	"rentdesk/internal/domain"
	"rentdesk/internal/logger"
	"rentdesk/internal/store"
)

type productTypeService struct {
	docs store.DocumentStore
	log  *slog.Logger
}

func NewProductTypeService(docs store.DocumentStore) ProductTypeService {
	return &productTypeService{docs: docs, log: logger.WithService("product_types")}
}

func (s *productTypeService) List(ctx context.Context) ([]string, error) {
	return loadProductTypes(ctx, s.docs)
}

func (s *productTypeService) Add(ctx context.Context, name string) ([]string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrEmptyProductType
	}

	types, err := loadProductTypes(ctx, s.docs)
	if err != nil {
		return nil, err
	}
	for _, t := range types {
		if strings.EqualFold(t, name) {
			return nil, domain.ErrDuplicateProductType
		}
	}

	types = append(types, name)
	if err := s.docs.Set(ctx, store.KeyProductTypes, types); err != nil {
		return nil, err
	}
	s.log.Info("Product type added", "name", name)
	return types, nil
}

func (s *productTypeService) Delete(ctx context.Context, name string) ([]string, error) {
	assets, err := loadAssets(ctx, s.docs)
	if err != nil {
		return nil, err
	}
	for _, a := range assets {
		if a.ProductType == name {
			return nil, domain.ErrProductTypeInUse
		}
	}

	types, err := loadProductTypes(ctx, s.docs)
	if err != nil {
		return nil, err
	}
	kept := types[:0]
	for _, t := range types {
		if t != name {
			kept = append(kept, t)
		}
	}
	if err := s.docs.Set(ctx, store.KeyProductTypes, kept); err != nil {
		return nil, err
	}
	s.log.Info("Product type deleted", "name", name)
	return kept, nil
}
