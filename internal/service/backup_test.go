package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentdesk/internal/domain"
)

type snapshot struct {
	assets    []domain.Asset
	customers []domain.Customer
	types     []string
}

func takeSnapshot(t *testing.T, svcs *Services) snapshot {
	t.Helper()
	ctx := context.Background()
	assets, err := svcs.Assets.List(ctx)
	require.NoError(t, err)
	customers, err := svcs.Customers.List(ctx)
	require.NoError(t, err)
	types, err := svcs.ProductTypes.List(ctx)
	require.NoError(t, err)
	return snapshot{assets: assets, customers: customers, types: types}
}

func TestExportAll(t *testing.T) {
	svcs, _ := newTestServices(t)
	payload, err := svcs.Backup.ExportAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "1.0", payload.Version)
	assert.False(t, payload.ExportDate.IsZero())
	assert.Len(t, payload.Assets, 3)
	assert.Len(t, payload.Customers, 2)
	assert.Equal(t, domain.DefaultPassword, payload.AppPassword)
}

func TestImportRejectsInvalidPayload(t *testing.T) {
	ctx := context.Background()

	t.Run("Missing assets leaves state untouched", func(t *testing.T) {
		svcs, _ := newTestServices(t)
		before := takeSnapshot(t, svcs)

		raw := []byte(`{"customers":[],"productTypes":[],"appPassword":"x"}`)
		err := svcs.Backup.ImportAll(ctx, raw)

		var importErr *domain.ImportError
		require.ErrorAs(t, err, &importErr)
		assert.Equal(t, []string{"assets"}, importErr.Missing)

		after := takeSnapshot(t, svcs)
		assert.Equal(t, before, after)
	})

	t.Run("Unparsable input is reported", func(t *testing.T) {
		svcs, _ := newTestServices(t)
		before := takeSnapshot(t, svcs)

		err := svcs.Backup.ImportAll(ctx, []byte("{not json"))
		assert.Error(t, err)
		assert.Equal(t, before, takeSnapshot(t, svcs))
	})

	t.Run("All required fields reported at once", func(t *testing.T) {
		svcs, _ := newTestServices(t)
		err := svcs.Backup.ImportAll(ctx, []byte(`{}`))

		var importErr *domain.ImportError
		require.ErrorAs(t, err, &importErr)
		assert.Equal(t, []string{"assets", "customers", "productTypes", "appPassword"}, importErr.Missing)
	})
}

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	svcs, _ := newTestServices(t)

	// Make the dataset non-trivial first.
	rentSeedAsset(t, svcs, "ASSET-001", "CUST-001")

	exported, err := svcs.Backup.ExportAll(ctx)
	require.NoError(t, err)
	raw, err := json.Marshal(exported)
	require.NoError(t, err)

	before := takeSnapshot(t, svcs)
	require.NoError(t, svcs.Backup.ImportAll(ctx, raw))
	after := takeSnapshot(t, svcs)

	assert.Equal(t, before, after, "import of a fresh export must be observably idempotent")

	settings, err := svcs.Security.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, exported.AppPassword, settings.Password)
}

func TestAutoBackup(t *testing.T) {
	ctx := context.Background()

	t.Run("First run backs up", func(t *testing.T) {
		svcs, _ := newTestServices(t)
		now := time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)

		ran, err := svcs.Backup.RunAutoBackupIfDue(ctx, now)
		require.NoError(t, err)
		assert.True(t, ran)

		record, err := svcs.Backup.GetAutoBackup(ctx)
		require.NoError(t, err)
		require.NotNil(t, record.Data)
		assert.Equal(t, now.UnixMilli(), record.Timestamp)
		assert.Len(t, record.Data.Assets, 3)
	})

	t.Run("Within the window nothing runs", func(t *testing.T) {
		svcs, _ := newTestServices(t)
		now := time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)

		ran, err := svcs.Backup.RunAutoBackupIfDue(ctx, now)
		require.NoError(t, err)
		require.True(t, ran)

		ran, err = svcs.Backup.RunAutoBackupIfDue(ctx, now.Add(23*time.Hour))
		require.NoError(t, err)
		assert.False(t, ran)
	})

	t.Run("Slot is overwritten after the window passes", func(t *testing.T) {
		svcs, _ := newTestServices(t)
		first := time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)
		second := first.Add(25 * time.Hour)

		_, err := svcs.Backup.RunAutoBackupIfDue(ctx, first)
		require.NoError(t, err)

		ran, err := svcs.Backup.RunAutoBackupIfDue(ctx, second)
		require.NoError(t, err)
		assert.True(t, ran)

		record, err := svcs.Backup.GetAutoBackup(ctx)
		require.NoError(t, err)
		assert.Equal(t, second.UnixMilli(), record.Timestamp)
	})
}

func TestRestoreAutoBackup(t *testing.T) {
	ctx := context.Background()

	t.Run("Snapshot replaces later changes", func(t *testing.T) {
		svcs, _ := newTestServices(t)
		now := time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)

		ran, err := svcs.Backup.RunAutoBackupIfDue(ctx, now)
		require.NoError(t, err)
		require.True(t, ran)
		atBackup := takeSnapshot(t, svcs)

		// Drift the live data away from the snapshot.
		_, err = svcs.Assets.Add(ctx, domain.Asset{Name: "Scaffolding", ProductType: "Ladder", Rate: 20, BillingCycle: domain.BillingCycleDay})
		require.NoError(t, err)
		rentSeedAsset(t, svcs, "ASSET-001", "CUST-001")
		require.NotEqual(t, atBackup, takeSnapshot(t, svcs))

		require.NoError(t, svcs.Backup.RestoreAutoBackup(ctx))
		assert.Equal(t, atBackup, takeSnapshot(t, svcs))
	})

	t.Run("Password is part of the snapshot", func(t *testing.T) {
		svcs, _ := newTestServices(t)
		now := time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)

		_, err := svcs.Backup.RunAutoBackupIfDue(ctx, now)
		require.NoError(t, err)

		err = svcs.Security.UpdateSettings(ctx, UpdateSecurityParams{
			CurrentPassword: domain.DefaultPassword,
			NewPassword:     "changed-later",
		})
		require.NoError(t, err)

		require.NoError(t, svcs.Backup.RestoreAutoBackup(ctx))
		settings, err := svcs.Security.GetSettings(ctx)
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultPassword, settings.Password)
	})

	t.Run("Empty slot is an error", func(t *testing.T) {
		svcs, _ := newTestServices(t)
		err := svcs.Backup.RestoreAutoBackup(ctx)
		assert.ErrorIs(t, err, domain.ErrNoAutoBackup)
	})
}
