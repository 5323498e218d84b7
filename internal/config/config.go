package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Data    DataConfig    `yaml:"data"`
	Log     LogConfig     `yaml:"log"`
	Backup  BackupConfig  `yaml:"backup"`
	Scanner ScannerConfig `yaml:"scanner"`
}

// DataConfig locates the document database and tunes the synthetic latency
// applied to each store operation.
type DataConfig struct {
	Path      string `yaml:"path"`
	LatencyMS int    `yaml:"latency_ms"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// BackupConfig controls the auto-backup window and the cron schedule on
// which the due-check re-runs while the application stays open.
type BackupConfig struct {
	IntervalHours int    `yaml:"interval_hours"`
	Schedule      string `yaml:"schedule"`
}

// ScannerConfig tunes the barcode keystroke listener.
type ScannerConfig struct {
	GapMS int `yaml:"gap_ms"` // inter-key gap that resets the scan buffer
}

// Load reads configuration from a YAML file, then applies environment
// overrides and defaults. An empty path means "defaults only": this is a
// local tool and must start without any config file present.
func Load(configPath string) (*Config, error) {
	var cfg Config

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables.
func (c *Config) overrideWithEnv() {
	if val := os.Getenv("RENTDESK_DATA_PATH"); val != "" {
		c.Data.Path = val
	}
	if val := os.Getenv("RENTDESK_LATENCY_MS"); val != "" {
		fmt.Sscanf(val, "%d", &c.Data.LatencyMS)
	}
	if val := os.Getenv("RENTDESK_LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("RENTDESK_LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}
	if val := os.Getenv("RENTDESK_BACKUP_INTERVAL_HOURS"); val != "" {
		fmt.Sscanf(val, "%d", &c.Backup.IntervalHours)
	}
}

// Validate checks the configuration and fills in defaults.
func (c *Config) Validate() error {
	if c.Data.Path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("cannot resolve home directory for data path: %w", err)
		}
		c.Data.Path = filepath.Join(home, ".rentdesk", "rentdesk.db")
	}
	if c.Data.LatencyMS < 0 {
		return fmt.Errorf("data latency must not be negative: %d", c.Data.LatencyMS)
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}

	if c.Backup.IntervalHours == 0 {
		c.Backup.IntervalHours = 24
	}
	if c.Backup.IntervalHours < 0 {
		return fmt.Errorf("backup interval must not be negative: %d", c.Backup.IntervalHours)
	}
	if c.Backup.Schedule == "" {
		c.Backup.Schedule = "0 0 * * * *" // hourly due-check
	}

	if c.Scanner.GapMS == 0 {
		c.Scanner.GapMS = 100
	}

	return nil
}
