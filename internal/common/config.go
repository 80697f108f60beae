// Package common provides shared utilities for fundflow
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for fundflow
type Config struct {
	Environment string          `toml:"environment"`
	Logging     LoggingConfig   `toml:"logging"`
	IDs         IDConfig        `toml:"ids"`
	Scheduler   SchedulerConfig `toml:"scheduler"`
	Payment     PaymentConfig   `toml:"payment"`
	Market      MarketConfig    `toml:"market"`
	Seed        SeedConfig      `toml:"seed"`
	Charts      ChartsConfig    `toml:"charts"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "console" or "json"
}

// IDConfig selects the identifier generator.
type IDConfig struct {
	Mode string `toml:"mode"` // "sequence" or "uuid"
}

// SchedulerConfig holds the daemon schedule.
type SchedulerConfig struct {
	Cron       string `toml:"cron"` // six-field cron expression, seconds first
	RunOnStart bool   `toml:"run_on_start"`
}

// PaymentConfig tunes the simulated payment gateway.
type PaymentConfig struct {
	AutoComplete      bool    `toml:"auto_complete"`
	SuccessRate       float64 `toml:"success_rate"`
	MinDelay          string  `toml:"min_delay"`
	MaxDelay          string  `toml:"max_delay"`
	DuplicateDelivery bool    `toml:"duplicate_delivery"`
	RateLimit         int     `toml:"rate_limit"` // initiations per second, 0 = unlimited
}

// GetMinDelay parses and returns the minimum completion delay
func (c *PaymentConfig) GetMinDelay() time.Duration {
	d, err := time.ParseDuration(c.MinDelay)
	if err != nil {
		return 0
	}
	return d
}

// GetMaxDelay parses and returns the maximum completion delay
func (c *PaymentConfig) GetMaxDelay() time.Duration {
	d, err := time.ParseDuration(c.MaxDelay)
	if err != nil {
		return 0
	}
	return d
}

// MarketConfig tunes the simulated market.
type MarketConfig struct {
	MovementPercent float64 `toml:"movement_pct"` // max ± NAV drift per simulated movement
}

// SeedConfig controls sample data loading.
type SeedConfig struct {
	SampleFunds bool `toml:"sample_funds"`
	DemoUser    bool `toml:"demo_user"`
}

// ChartsConfig holds chart export settings.
type ChartsConfig struct {
	OutputDir string `toml:"output_dir"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		IDs: IDConfig{
			Mode: "sequence",
		},
		Scheduler: SchedulerConfig{
			Cron:       "0 0 9 * * *",
			RunOnStart: true,
		},
		Payment: PaymentConfig{
			AutoComplete: true,
			SuccessRate:  1.0,
			MinDelay:     "0s",
			MaxDelay:     "0s",
		},
		Market: MarketConfig{
			MovementPercent: 2.0,
		},
		Seed: SeedConfig{
			SampleFunds: true,
			DemoUser:    true,
		},
		Charts: ChartsConfig{
			OutputDir: "charts",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	// Apply environment overrides
	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("FUNDFLOW_ENV"); env != "" {
		config.Environment = env
	}

	if level := os.Getenv("FUNDFLOW_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if format := os.Getenv("FUNDFLOW_LOG_FORMAT"); format != "" {
		config.Logging.Format = format
	}

	if mode := os.Getenv("FUNDFLOW_IDS"); mode != "" {
		config.IDs.Mode = mode
	}

	if spec := os.Getenv("FUNDFLOW_CRON"); spec != "" {
		config.Scheduler.Cron = spec
	}

	if v := os.Getenv("FUNDFLOW_RUN_ON_START"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			config.Scheduler.RunOnStart = b
		}
	}

	if v := os.Getenv("FUNDFLOW_SUCCESS_RATE"); v != "" {
		if rate, err := strconv.ParseFloat(v, 64); err == nil {
			config.Payment.SuccessRate = rate
		}
	}

	if dir := os.Getenv("FUNDFLOW_CHARTS_DIR"); dir != "" {
		config.Charts.OutputDir = dir
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
