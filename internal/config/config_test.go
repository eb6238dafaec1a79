package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "ecommerce_search_logs.csv", cfg.Dataset.Path)
	assert.Equal(t, 2000, cfg.Generator.Rows)
	assert.Equal(t, 0.30, cfg.Dashboard.TargetCTR)
	assert.NoError(t, cfg.Validate(), "default config must validate")
}

func TestConfig_LoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, int64(42), cfg.Generator.Seed)
}

func TestConfig_SaveLoad(t *testing.T) {
	t.Setenv("SEARCHPULSE_DATASET", "")
	t.Setenv("SEARCHPULSE_SEED", "")

	path := filepath.Join(t.TempDir(), "searchpulse.yaml")

	cfg := DefaultConfig()
	cfg.Dataset.Path = "demo.csv"
	cfg.Dashboard.AvgOrderValue = 75

	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "demo.csv", loaded.Dataset.Path)
	assert.Equal(t, 75.0, loaded.Dashboard.AvgOrderValue)
}

func TestConfig_LoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "searchpulse.yaml")
	writeFile(t, path, "dashboard: [not a map")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SEARCHPULSE_DATASET", "/tmp/other.csv")
	t.Setenv("SEARCHPULSE_SEED", "7")
	t.Setenv("SEARCHPULSE_DEBUG", "1")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/other.csv", cfg.Dataset.Path)
	assert.Equal(t, int64(7), cfg.Generator.Seed)
	assert.True(t, cfg.Logging.DebugMode)
}

func TestConfig_Validate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero rows", func(c *Config) { c.Generator.Rows = 0 }},
		{"negative days", func(c *Config) { c.Generator.DaysBack = -1 }},
		{"target ctr above one", func(c *Config) { c.Dashboard.TargetCTR = 1.2 }},
		{"negative target ctr", func(c *Config) { c.Dashboard.TargetCTR = -0.1 }},
		{"conversion rate above one", func(c *Config) { c.Dashboard.ConversionRate = 2 }},
		{"negative floor", func(c *Config) { c.Dashboard.MinImpressions = -5 }},
		{"empty dataset path", func(c *Config) { c.Dataset.Path = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
