// Package config provides configuration management for the brochure tools.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrInvalidCategoryOrder = errors.New("build.category_order must be 'first_seen' or 'alphabetical'")
	ErrInvalidTheme         = errors.New("build.theme is required")
	ErrInvalidItemsPerPage  = errors.New("build.items_per_page must be at least 1")
	ErrInvalidMaxAttempts   = errors.New("retry.max_attempts must be at least 1")
	ErrInvalidInitialDelay  = errors.New("retry.initial_delay_ms must be non-negative")
	ErrInvalidBackoff       = errors.New("retry.backoff_multiplier must be >= 1.0")
	ErrInvalidTimeout       = errors.New("retry.timeout_sec must be at least 1")
	ErrInvalidLogLevel      = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrMissingBucket        = errors.New("s3.bucket is required for migration")
)

// Config represents the complete brochure tool configuration.
type Config struct {
	Build   BuildConfig   `yaml:"build"`
	Company CompanyConfig `yaml:"company"`
	Retry   RetryPolicy   `yaml:"retry"`
	S3      S3Config      `yaml:"s3"`
	Sheets  SheetsConfig  `yaml:"sheets"`
	Logging LoggingConfig `yaml:"logging"`
}

// BuildConfig contains catalogue build settings.
type BuildConfig struct {
	Theme         string `yaml:"theme"`
	CategoryOrder string `yaml:"category_order"`
	ItemsPerPage  int    `yaml:"items_per_page"`
	WriteManifest bool   `yaml:"write_manifest"`
}

// CompanyConfig supplies the branding block rendered on the cover page.
type CompanyConfig struct {
	Name        string   `yaml:"name"`
	Tagline     string   `yaml:"tagline"`
	Description string   `yaml:"description"`
	Website     string   `yaml:"website"`
	Email       string   `yaml:"email"`
	ValueProps  []string `yaml:"value_props"`
}

// RetryPolicy defines retry behavior for the network-facing tools.
type RetryPolicy struct {
	MaxAttempts       int     `yaml:"max_attempts"`
	InitialDelayMs    int     `yaml:"initial_delay_ms"`
	MaxDelayMs        int     `yaml:"max_delay_ms"`
	BackoffMultiplier float64 `yaml:"backoff_multiplier"`
	TimeoutSec        int     `yaml:"timeout_sec"`
}

// S3Config defines the target bucket for image migration.
type S3Config struct {
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	KeyPrefix string `yaml:"key_prefix"`
	MaxWidth  int    `yaml:"max_width"`
}

// SheetsConfig defines the source spreadsheet for sync.
type SheetsConfig struct {
	SpreadsheetID string `yaml:"spreadsheet_id"`
	SheetName     string `yaml:"sheet_name"`
	DriveColumn   string `yaml:"drive_column"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level        string `yaml:"level"`
	ShowProgress bool   `yaml:"show_progress"`
}

// Default returns the configuration used when no config file is supplied.
func Default() *Config {
	return &Config{
		Build: BuildConfig{
			Theme:         "luxury-dark",
			CategoryOrder: "first_seen",
			ItemsPerPage:  9,
			WriteManifest: true,
		},
		Company: CompanyConfig{
			Name:    "Smart Home Catalogue",
			Tagline: "Your Home, Smarter Than Ever",
		},
		Retry: RetryPolicy{
			MaxAttempts:       3,
			InitialDelayMs:    500,
			MaxDelayMs:        30000,
			BackoffMultiplier: 2.0,
			TimeoutSec:        30,
		},
		S3: S3Config{
			Region:    "us-east-1",
			KeyPrefix: "product-images/",
		},
		Sheets: SheetsConfig{
			SheetName:   "All Products",
			DriveColumn: "Drive Link",
		},
		Logging: LoggingConfig{
			Level:        "info",
			ShowProgress: true,
		},
	}
}

// Load reads configuration from a YAML file, layered over the defaults.
func Load(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Build.Theme == "" {
		return ErrInvalidTheme
	}

	if c.Build.CategoryOrder != "first_seen" && c.Build.CategoryOrder != "alphabetical" {
		return ErrInvalidCategoryOrder
	}

	if c.Build.ItemsPerPage < 1 {
		return ErrInvalidItemsPerPage
	}

	if c.Retry.MaxAttempts < 1 {
		return ErrInvalidMaxAttempts
	}

	if c.Retry.InitialDelayMs < 0 {
		return ErrInvalidInitialDelay
	}

	if c.Retry.BackoffMultiplier < 1.0 {
		return ErrInvalidBackoff
	}

	if c.Retry.TimeoutSec < 1 {
		return ErrInvalidTimeout
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	return nil
}

// GetRetryDelay calculates exponential backoff delay for attempt number.
func (rp *RetryPolicy) GetRetryDelay(attempt int) time.Duration {
	if attempt <= 1 {
		return 0
	}

	delayMs := float64(rp.InitialDelayMs)
	for i := 1; i < attempt; i++ {
		delayMs *= rp.BackoffMultiplier
	}

	if int(delayMs) > rp.MaxDelayMs {
		delayMs = float64(rp.MaxDelayMs)
	}

	return time.Duration(int(delayMs)) * time.Millisecond
}

// GetTimeout returns the per-request timeout duration.
func (rp *RetryPolicy) GetTimeout() time.Duration {
	return time.Duration(rp.TimeoutSec) * time.Second
}

// String returns a short description of the config.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Theme: %s, Order: %s, MaxAttempts: %d}",
		c.Build.Theme, c.Build.CategoryOrder, c.Retry.MaxAttempts)
}
