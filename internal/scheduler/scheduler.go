// Package scheduler re-runs the auto-backup due-check on a cron schedule
// while the application stays open, so a session left running overnight
// still gets its daily snapshot.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"rentdesk/internal/logger"
	"rentdesk/internal/service"
)

// Scheduler manages cron job scheduling.
type Scheduler struct {
	cron   *cron.Cron
	backup service.BackupService
}

// New creates a scheduler that runs the auto-backup due-check on the given
// cron spec (six-field, with seconds, UTC).
func New(backup service.BackupService, spec string) (*Scheduler, error) {
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	s := &Scheduler{cron: c, backup: backup}
	if _, err := c.AddFunc(spec, s.checkAutoBackup); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scheduler) checkAutoBackup() {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Auto-backup job panicked", "panic", r)
		}
	}()

	ran, err := s.backup.RunAutoBackupIfDue(context.Background(), time.Now())
	if err != nil {
		logger.Error("Auto-backup check failed", "error", err)
		return
	}
	if ran {
		logger.Info("Scheduled auto-backup completed")
	}
}

// Start begins the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	logger.Info("Auto-backup scheduler started")
}

// Stop gracefully stops the scheduler, waiting for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Auto-backup scheduler stopped")
}
