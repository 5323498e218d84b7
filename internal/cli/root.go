// Package cli wires configuration, storage and services behind the rentdesk
// command tree. The bare command opens the terminal UI; subcommands cover
// the file-level backup operations that make sense without a screen.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"rentdesk/internal/config"
	"rentdesk/internal/logger"
	"rentdesk/internal/scheduler"
	"rentdesk/internal/service"
	"rentdesk/internal/store"
	"rentdesk/internal/tui"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "rentdesk",
	Short: "Rental desk for a small asset fleet",
	Long: `rentdesk tracks a rental fleet from the terminal: assets, customers,
check-outs with per-rental rate snapshots, partial payments and JSON
backup/restore. All data lives in a single local database file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := setup()
		if err != nil {
			return err
		}

		sched, err := scheduler.New(app.svcs.Backup, app.cfg.Backup.Schedule)
		if err != nil {
			return fmt.Errorf("failed to start backup scheduler: %w", err)
		}
		sched.Start()
		defer sched.Stop()

		gap := time.Duration(app.cfg.Scanner.GapMS) * time.Millisecond
		return tui.Run(app.svcs, gap)
	},
}

// app bundles everything setup produces.
type app struct {
	cfg  *config.Config
	svcs *service.Services
}

func setup() (*app, error) {
	// A .env file is optional; absence is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)

	if cfg.Data.Path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.Data.Path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	docs, err := store.Open(cfg.Data.Path, time.Duration(cfg.Data.LatencyMS)*time.Millisecond)
	if err != nil {
		return nil, err
	}

	window := time.Duration(cfg.Backup.IntervalHours) * time.Hour
	return &app{cfg: cfg, svcs: service.New(docs, window)}, nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to a YAML config file")
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(restoreCmd)
}
