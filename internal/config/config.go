package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds server and sweep configuration.
type Config struct {
	// Server settings
	Server ServerConfig `yaml:"server"`

	// Storage
	Database DatabaseConfig `yaml:"database"`

	// Sweep execution
	Sweep SweepConfig `yaml:"sweep"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr           string  `yaml:"addr"`
	RateLimit      float64 `yaml:"rate_limit"` // requests per second
	RateLimitBurst int     `yaml:"rate_limit_burst"`
	MaxType        int64   `yaml:"max_type"`
	MaxThreshold   int64   `yaml:"max_threshold"`
	MaxNaive       int64   `yaml:"max_naive_threshold"`
	MaxSweepCells  int64   `yaml:"max_sweep_cells"`

	// ComputeTimeout bounds a single count or sweep request, e.g. "30s".
	ComputeTimeout time.Duration `yaml:"compute_timeout"`
}

// DatabaseConfig configures the SQLite result store.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// SweepConfig configures the sweep worker pool.
type SweepConfig struct {
	Workers int `yaml:"workers"` // 0 uses runtime.NumCPU()
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:           ":8080",
			RateLimit:      50,
			RateLimitBurst: 100,
			MaxType:        100_000,
			MaxThreshold:   1_000_000_000_000,
			MaxNaive:       10_000_000,
			MaxSweepCells:  10_000,
			ComputeTimeout: 30 * time.Second,
		},
		Database: DatabaseConfig{
			Path: "./hamming.db",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads a YAML config file on top of the defaults and applies
// environment overrides. An empty path only applies the overrides.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("DB_PATH"); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv("HAMMING_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("HAMMING_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// Validate checks the configuration for unusable values.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr must not be empty")
	}
	if c.Server.RateLimit <= 0 {
		return fmt.Errorf("server.rate_limit must be positive, got %v", c.Server.RateLimit)
	}
	if c.Server.RateLimitBurst <= 0 {
		return fmt.Errorf("server.rate_limit_burst must be positive, got %d", c.Server.RateLimitBurst)
	}
	if c.Server.MaxType <= 0 || c.Server.MaxThreshold <= 0 || c.Server.MaxNaive <= 0 || c.Server.MaxSweepCells <= 0 {
		return fmt.Errorf("server threshold limits must be positive")
	}
	if c.Server.ComputeTimeout < 0 {
		return fmt.Errorf("server.compute_timeout must not be negative, got %v", c.Server.ComputeTimeout)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path must not be empty")
	}
	return nil
}
