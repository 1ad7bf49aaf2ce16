// Package config manages application configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"descsync/retry"
)

// Well-known file names inside the configured directories.
const (
	// ClientSecretFile holds the OAuth application credentials.
	ClientSecretFile = "client_secret.json"
	// TokenCacheFile holds the cached OAuth token.
	TokenCacheFile = "credentials.json"
	// MetadataFile holds the track/video catalog.
	MetadataFile = "metadata.json"
)

// Config holds all application configuration for description update operations.
type Config struct {
	// CredentialsDir is the directory holding client_secret.json and the
	// cached token credentials.json (default: "google-credentials")
	CredentialsDir string `json:"credentials_dir"`
	// DescriptionsDir is the directory holding metadata.json and the
	// generated <slug>_<videoID>.txt description files (default: "_descriptions")
	DescriptionsDir string `json:"descriptions_dir"`
	// HistoryPath is the path of the push-history store (default: "descsync-history.json")
	HistoryPath string `json:"history_path"`

	// QuotaReserve is the minimum estimated API quota units to keep in reserve
	QuotaReserve int `json:"quota_reserve"`

	// MaxRetries is the maximum number of retries for failed API calls
	MaxRetries int `json:"max_retries"`
	// InitialBackoff is the initial backoff duration for retries
	InitialBackoff time.Duration `json:"initial_backoff"`
	// MaxBackoff is the maximum backoff duration for retries
	MaxBackoff time.Duration `json:"max_backoff"`
	// BackoffMultiplier is the multiplier for exponential backoff (must be > 1)
	BackoffMultiplier float64 `json:"backoff_multiplier"`
}

// DefaultConfig returns configuration with safe defaults.
func DefaultConfig() *Config {
	return &Config{
		CredentialsDir:    "google-credentials",
		DescriptionsDir:   "_descriptions",
		HistoryPath:       "descsync-history.json",
		QuotaReserve:      0,
		MaxRetries:        5,
		InitialBackoff:    1 * time.Second,
		MaxBackoff:        30 * time.Second,
		BackoffMultiplier: 2.0,
	}
}

// Load loads configuration from environment variables, config file, and applies defaults.
// Priority: env vars > config file > defaults
func Load() (*Config, error) {
	cfg := DefaultConfig()

	// Try to load from config file
	if err := cfg.loadFromFile(); err != nil {
		// Config file is optional
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	// Override with environment variables
	cfg.loadFromEnv()

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromFile attempts to load config from descsync.json in current directory or home directory.
func (c *Config) loadFromFile() error {
	paths := []string{
		"descsync.json",
		filepath.Join(os.Getenv("HOME"), ".config", "descsync", "descsync.json"),
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return err
		}

		if err := json.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		return nil
	}

	return os.ErrNotExist
}

// loadFromEnv overrides config with environment variables.
func (c *Config) loadFromEnv() {
	if v := os.Getenv("DESCSYNC_CREDENTIALS_DIR"); v != "" {
		c.CredentialsDir = v
	}
	if v := os.Getenv("DESCSYNC_DESCRIPTIONS_DIR"); v != "" {
		c.DescriptionsDir = v
	}
	if v := os.Getenv("DESCSYNC_HISTORY_PATH"); v != "" {
		c.HistoryPath = v
	}
	if v := os.Getenv("DESCSYNC_QUOTA_RESERVE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.QuotaReserve = n
		}
	}
	if v := os.Getenv("DESCSYNC_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxRetries = n
		}
	}
	if v := os.Getenv("DESCSYNC_INITIAL_BACKOFF"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.InitialBackoff = d
		}
	}
	if v := os.Getenv("DESCSYNC_MAX_BACKOFF"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.MaxBackoff = d
		}
	}
}

// Validate checks that configuration values are valid and consistent.
// It returns an error if any configuration value is invalid.
func (c *Config) Validate() error {
	if c.CredentialsDir == "" {
		return fmt.Errorf("credentials_dir must not be empty")
	}
	if c.DescriptionsDir == "" {
		return fmt.Errorf("descriptions_dir must not be empty")
	}
	if c.HistoryPath == "" {
		return fmt.Errorf("history_path must not be empty")
	}
	if c.QuotaReserve < 0 {
		return fmt.Errorf("quota_reserve must be non-negative")
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max_retries must be non-negative")
	}
	if c.InitialBackoff <= 0 {
		return fmt.Errorf("initial_backoff must be positive")
	}
	if c.MaxBackoff <= 0 {
		return fmt.Errorf("max_backoff must be positive")
	}
	if c.MaxBackoff < c.InitialBackoff {
		return fmt.Errorf("max_backoff must be >= initial_backoff")
	}
	if c.BackoffMultiplier <= 1 {
		return fmt.Errorf("backoff_multiplier must be > 1")
	}
	return nil
}

// ClientSecretPath returns the path of the OAuth application credentials file.
func (c *Config) ClientSecretPath() string {
	return filepath.Join(c.CredentialsDir, ClientSecretFile)
}

// TokenCachePath returns the path of the cached OAuth token file.
func (c *Config) TokenCachePath() string {
	return filepath.Join(c.CredentialsDir, TokenCacheFile)
}

// MetadataPath returns the path of the track/video catalog file.
func (c *Config) MetadataPath() string {
	return filepath.Join(c.DescriptionsDir, MetadataFile)
}

// RetryConfig builds the retry configuration for API calls.
func (c *Config) RetryConfig() retry.Config {
	cfg := retry.DefaultConfig()
	cfg.MaxRetries = c.MaxRetries
	cfg.InitialBackoff = c.InitialBackoff
	cfg.MaxBackoff = c.MaxBackoff
	cfg.Multiplier = c.BackoffMultiplier
	return cfg
}
