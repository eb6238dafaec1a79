// Package config loads and persists searchpulse configuration.
// Configuration lives in a single YAML file; every value has a sane default
// so the tool runs with no config file at all.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is the config file searched for in the working directory.
const DefaultFileName = "searchpulse.yaml"

// Config holds all searchpulse configuration.
type Config struct {
	// Dataset settings
	Dataset DatasetConfig `yaml:"dataset"`

	// Synthetic generator settings
	Generator GeneratorConfig `yaml:"generator"`

	// Dashboard parameter defaults
	Dashboard DashboardConfig `yaml:"dashboard"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// DatasetConfig locates the flat search-log file.
type DatasetConfig struct {
	Path string `yaml:"path"`
}

// GeneratorConfig configures the synthetic log generator.
type GeneratorConfig struct {
	Rows     int   `yaml:"rows"`
	DaysBack int   `yaml:"days_back"`
	Seed     int64 `yaml:"seed"`
}

// DashboardConfig holds the initial values for the interactive controls.
type DashboardConfig struct {
	MinImpressions int     `yaml:"min_impressions"`
	TargetCTR      float64 `yaml:"target_ctr"`
	Lift           float64 `yaml:"lift"`             // relative, 0.15 == +15%
	ConversionRate float64 `yaml:"conversion_rate"`  // conversions per incremental click
	AvgOrderValue  float64 `yaml:"avg_order_value"`  // monetary units
	TopQueries     int     `yaml:"top_queries"`      // rows shown on the overview page
}

// LoggingConfig configures the session file logger.
type LoggingConfig struct {
	DebugMode bool   `yaml:"debug_mode"`
	Level     string `yaml:"level"` // debug, info, warn, error
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Dataset: DatasetConfig{
			Path: "ecommerce_search_logs.csv",
		},
		Generator: GeneratorConfig{
			Rows:     2000,
			DaysBack: 30,
			Seed:     42,
		},
		Dashboard: DashboardConfig{
			MinImpressions: 20,
			TargetCTR:      0.30,
			Lift:           0.15,
			ConversionRate: 0.10,
			AvgOrderValue:  50.0,
			TopQueries:     10,
		},
		Logging: LoggingConfig{
			DebugMode: false,
			Level:     "info",
		},
	}
}

// Load loads configuration from a YAML file. A missing file returns the
// defaults; a present but unparseable file is an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if path := os.Getenv("SEARCHPULSE_DATASET"); path != "" {
		c.Dataset.Path = path
	}
	if rows := os.Getenv("SEARCHPULSE_ROWS"); rows != "" {
		if n, err := strconv.Atoi(rows); err == nil {
			c.Generator.Rows = n
		}
	}
	if seed := os.Getenv("SEARCHPULSE_SEED"); seed != "" {
		if n, err := strconv.ParseInt(seed, 10, 64); err == nil {
			c.Generator.Seed = n
		}
	}
	if debug := os.Getenv("SEARCHPULSE_DEBUG"); debug == "1" || debug == "true" {
		c.Logging.DebugMode = true
	}
	if level := os.Getenv("SEARCHPULSE_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
}

// Validate checks that configured values are usable before they reach the
// compute layers. The dashboard re-validates interactively edited values on
// its own; this catches a broken config file at startup.
func (c *Config) Validate() error {
	if c.Dataset.Path == "" {
		return fmt.Errorf("dataset.path must not be empty")
	}
	if c.Generator.Rows < 1 {
		return fmt.Errorf("generator.rows must be a positive integer, got %d", c.Generator.Rows)
	}
	if c.Generator.DaysBack < 1 {
		return fmt.Errorf("generator.days_back must be a positive integer, got %d", c.Generator.DaysBack)
	}
	if c.Dashboard.TargetCTR < 0 || c.Dashboard.TargetCTR > 1 {
		return fmt.Errorf("dashboard.target_ctr must lie in [0,1], got %g", c.Dashboard.TargetCTR)
	}
	if c.Dashboard.ConversionRate < 0 || c.Dashboard.ConversionRate > 1 {
		return fmt.Errorf("dashboard.conversion_rate must lie in [0,1], got %g", c.Dashboard.ConversionRate)
	}
	if c.Dashboard.MinImpressions < 0 {
		return fmt.Errorf("dashboard.min_impressions must not be negative, got %d", c.Dashboard.MinImpressions)
	}
	return nil
}
