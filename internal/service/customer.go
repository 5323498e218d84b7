package service

import (
	"context"
	"log/slog"

	"rentdesk/internal/domain"
	"rentdesk/internal/logger"
	"rentdesk/internal/store"
)

type customerService struct {
	docs store.DocumentStore
	log  *slog.Logger
}

func NewCustomerService(docs store.DocumentStore) CustomerService {
	return &customerService{docs: docs, log: logger.WithService("customers")}
}

func (s *customerService) List(ctx context.Context) ([]domain.Customer, error) {
	return loadCustomers(ctx, s.docs)
}

func (s *customerService) Add(ctx context.Context, customer domain.Customer) (*domain.Customer, error) {
	customers, err := loadCustomers(ctx, s.docs)
	if err != nil {
		return nil, err
	}

	customer.ID = newID("CUST")
	customers = append(customers, customer)
	if err := s.docs.Set(ctx, store.KeyCustomers, customers); err != nil {
		return nil, err
	}
	s.log.Info("Customer added", "id", customer.ID, "name", customer.Name)
	return &customer, nil
}

func (s *customerService) Update(ctx context.Context, customer domain.Customer) (*domain.Customer, error) {
	customers, err := loadCustomers(ctx, s.docs)
	if err != nil {
		return nil, err
	}

	for i := range customers {
		if customers[i].ID == customer.ID {
			customers[i] = customer
			break
		}
	}
	if err := s.docs.Set(ctx, store.KeyCustomers, customers); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (s *customerService) Delete(ctx context.Context, customerID string) error {
	customers, err := loadCustomers(ctx, s.docs)
	if err != nil {
		return err
	}

	kept := customers[:0]
	for _, c := range customers {
		if c.ID != customerID {
			kept = append(kept, c)
		}
	}
	if err := s.docs.Set(ctx, store.KeyCustomers, kept); err != nil {
		return err
	}
	s.log.Info("Customer deleted", "id", customerID)
	return nil
}

func (s *customerService) HasRentalHistory(ctx context.Context, customerID string) (bool, error) {
	assets, err := loadAssets(ctx, s.docs)
	if err != nil {
		return false, err
	}
	for _, a := range assets {
		for _, r := range a.RentalHistory {
			if r.CustomerID == customerID {
				return true, nil
			}
		}
	}
	return false, nil
}
