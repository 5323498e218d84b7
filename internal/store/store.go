// Package store persists whole collections as JSON documents keyed by a
// fixed name. There are no partial updates: callers read a full document,
// transform it in memory, and write the full document back. Writes to
// different keys are independent; nothing guarantees atomicity across keys.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"rentdesk/internal/logger"
)

// Persisted document keys.
const (
	KeyAssets                  = "assets"
	KeyCustomers               = "customers"
	KeyProductTypes            = "productTypes"
	KeyAppPassword             = "appPassword"
	KeySecurityQuestion        = "securityQuestion"
	KeySecurityAnswer          = "securityAnswer"
	KeyAutoBackupData          = "autoBackupData"
	KeyLastAutoBackupTimestamp = "lastAutoBackupTimestamp"
)

// DocumentStore reads and writes whole serialized collections.
//
// Get unmarshals the document at key into out. On a read miss the default is
// seeded into the store and returned. On a storage read failure the default
// is returned without seeding, so the application keeps functioning in a
// degraded mode.
type DocumentStore interface {
	Get(ctx context.Context, key string, out any, def any) error
	Set(ctx context.Context, key string, value any) error
}

type document struct {
	Key       string         `gorm:"primaryKey;size:64"`
	Value     datatypes.JSON `gorm:"not null"`
	UpdatedAt time.Time
}

func (document) TableName() string { return "documents" }

// Store is a DocumentStore backed by a single-file SQLite database. Every
// operation pauses for a configurable synthetic latency so callers keep the
// same loading-state contract as against a remote API.
type Store struct {
	db      *gorm.DB
	latency time.Duration
}

// Open opens (or creates) the document database at path. Use ":memory:" for
// an ephemeral store in tests.
func Open(path string, latency time.Duration) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open document database: %w", err)
	}
	if err := db.AutoMigrate(&document{}); err != nil {
		return nil, fmt.Errorf("failed to migrate documents table: %w", err)
	}
	return &Store{db: db, latency: latency}, nil
}

// pause applies the synthetic per-operation latency, honoring cancellation.
func (s *Store) pause(ctx context.Context) error {
	if s.latency <= 0 {
		return nil
	}
	select {
	case <-time.After(s.latency):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) Get(ctx context.Context, key string, out any, def any) error {
	if err := s.pause(ctx); err != nil {
		return err
	}

	var doc document
	err := s.db.WithContext(ctx).First(&doc, "key = ?", key).Error
	switch {
	case err == nil:
		if err := json.Unmarshal(doc.Value, out); err != nil {
			return fmt.Errorf("failed to decode document %q: %w", key, err)
		}
		return nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		// Read miss: seed the default and hand it back.
		raw, merr := json.Marshal(def)
		if merr != nil {
			return fmt.Errorf("failed to encode default for %q: %w", key, merr)
		}
		if serr := s.write(ctx, key, raw); serr != nil {
			logger.Error("Failed to seed default document", "key", key, "error", serr)
		}
		return json.Unmarshal(raw, out)

	default:
		// Storage failure: log and fall back to the default so the caller
		// keeps working read-only.
		logger.Error("Failed to read document", "key", key, "error", err)
		raw, merr := json.Marshal(def)
		if merr != nil {
			return fmt.Errorf("failed to encode default for %q: %w", key, merr)
		}
		return json.Unmarshal(raw, out)
	}
}

func (s *Store) Set(ctx context.Context, key string, value any) error {
	if err := s.pause(ctx); err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode document %q: %w", key, err)
	}
	if err := s.write(ctx, key, raw); err != nil {
		logger.Error("Failed to write document", "key", key, "error", err)
		return fmt.Errorf("failed to write document %q: %w", key, err)
	}
	return nil
}

func (s *Store) write(ctx context.Context, key string, raw []byte) error {
	doc := document{Key: key, Value: datatypes.JSON(raw), UpdatedAt: time.Now()}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&doc).Error
}
