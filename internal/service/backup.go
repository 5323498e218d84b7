package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"rentdesk/internal/domain"
	"rentdesk/internal/logger"
	"rentdesk/internal/store"
)

type backupService struct {
	docs   store.DocumentStore
	log    *slog.Logger
	window time.Duration
	now    func() time.Time
}

func NewBackupService(docs store.DocumentStore, window time.Duration) BackupService {
	return &backupService{
		docs:   docs,
		log:    logger.WithService("backup"),
		window: window,
		now:    time.Now,
	}
}

func (s *backupService) ExportAll(ctx context.Context) (*domain.ExportPayload, error) {
	assets, err := loadAssets(ctx, s.docs)
	if err != nil {
		return nil, err
	}
	customers, err := loadCustomers(ctx, s.docs)
	if err != nil {
		return nil, err
	}
	types, err := loadProductTypes(ctx, s.docs)
	if err != nil {
		return nil, err
	}

	var settings domain.SecuritySettings
	if err := s.docs.Get(ctx, store.KeyAppPassword, &settings.Password, domain.DefaultPassword); err != nil {
		return nil, fmt.Errorf("failed to load password: %w", err)
	}
	if err := s.docs.Get(ctx, store.KeySecurityQuestion, &settings.Question, ""); err != nil {
		return nil, fmt.Errorf("failed to load security question: %w", err)
	}
	if err := s.docs.Get(ctx, store.KeySecurityAnswer, &settings.Answer, ""); err != nil {
		return nil, fmt.Errorf("failed to load security answer: %w", err)
	}

	return &domain.ExportPayload{
		Assets:           assets,
		Customers:        customers,
		ProductTypes:     types,
		AppPassword:      settings.Password,
		SecurityQuestion: settings.Question,
		SecurityAnswer:   settings.Answer,
		ExportDate:       s.now(),
		Version:          domain.ExportVersion,
	}, nil
}

// importPayload uses pointers so that absent fields are distinguishable from
// empty ones during the shape check.
type importPayload struct {
	Assets           *[]domain.Asset    `json:"assets"`
	Customers        *[]domain.Customer `json:"customers"`
	ProductTypes     *[]string          `json:"productTypes"`
	AppPassword      string             `json:"appPassword"`
	SecurityQuestion string             `json:"securityQuestion"`
	SecurityAnswer   string             `json:"securityAnswer"`
}

func (p *importPayload) validate() error {
	var missing []string
	if p.Assets == nil {
		missing = append(missing, "assets")
	}
	if p.Customers == nil {
		missing = append(missing, "customers")
	}
	if p.ProductTypes == nil {
		missing = append(missing, "productTypes")
	}
	if p.AppPassword == "" {
		missing = append(missing, "appPassword")
	}
	if len(missing) > 0 {
		return &domain.ImportError{Missing: missing}
	}
	return nil
}

func (s *backupService) ImportAll(ctx context.Context, raw []byte) error {
	var payload importPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("failed to parse backup file: %w", err)
	}
	if err := payload.validate(); err != nil {
		return err
	}

	// Each collection is written as its own document; atomicity across keys
	// is not guaranteed, acceptable for a single-user local tool.
	if err := s.docs.Set(ctx, store.KeyAssets, *payload.Assets); err != nil {
		return err
	}
	if err := s.docs.Set(ctx, store.KeyCustomers, *payload.Customers); err != nil {
		return err
	}
	if err := s.docs.Set(ctx, store.KeyProductTypes, *payload.ProductTypes); err != nil {
		return err
	}
	if err := s.docs.Set(ctx, store.KeyAppPassword, payload.AppPassword); err != nil {
		return err
	}
	if err := s.docs.Set(ctx, store.KeySecurityQuestion, payload.SecurityQuestion); err != nil {
		return err
	}
	if err := s.docs.Set(ctx, store.KeySecurityAnswer, payload.SecurityAnswer); err != nil {
		return err
	}

	s.log.Info("Data imported",
		"assets", len(*payload.Assets),
		"customers", len(*payload.Customers),
		"product_types", len(*payload.ProductTypes))
	return nil
}

func (s *backupService) GetAutoBackup(ctx context.Context) (*domain.AutoBackupRecord, error) {
	var record domain.AutoBackupRecord
	if err := s.docs.Get(ctx, store.KeyAutoBackupData, &record.Data, (*domain.ExportPayload)(nil)); err != nil {
		return nil, fmt.Errorf("failed to load auto-backup: %w", err)
	}
	if err := s.docs.Get(ctx, store.KeyLastAutoBackupTimestamp, &record.Timestamp, int64(0)); err != nil {
		return nil, fmt.Errorf("failed to load auto-backup timestamp: %w", err)
	}
	return &record, nil
}

// RestoreAutoBackup feeds the stored snapshot back through the same
// validated import path a backup file would take.
func (s *backupService) RestoreAutoBackup(ctx context.Context) error {
	record, err := s.GetAutoBackup(ctx)
	if err != nil {
		return err
	}
	if record.Data == nil {
		return domain.ErrNoAutoBackup
	}

	raw, err := json.Marshal(record.Data)
	if err != nil {
		return fmt.Errorf("failed to encode auto-backup snapshot: %w", err)
	}
	if err := s.ImportAll(ctx, raw); err != nil {
		return err
	}
	s.log.Info("Restored from auto-backup", "taken", time.UnixMilli(record.Timestamp))
	return nil
}

func (s *backupService) RunAutoBackupIfDue(ctx context.Context, now time.Time) (bool, error) {
	record, err := s.GetAutoBackup(ctx)
	if err != nil {
		return false, err
	}
	if now.UnixMilli()-record.Timestamp <= s.window.Milliseconds() {
		return false, nil
	}

	payload, err := s.ExportAll(ctx)
	if err != nil {
		return false, err
	}
	if err := s.docs.Set(ctx, store.KeyAutoBackupData, payload); err != nil {
		return false, err
	}
	if err := s.docs.Set(ctx, store.KeyLastAutoBackupTimestamp, now.UnixMilli()); err != nil {
		return false, err
	}
	s.log.Info("Auto-backup refreshed", "assets", len(payload.Assets), "customers", len(payload.Customers))
	return true, nil
}
