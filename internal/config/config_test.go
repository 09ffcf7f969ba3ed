package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	cfg := New()

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "~/.local/share/swim", cfg.DataDir)
	assert.Equal(t, 30, cfg.TimeoutSeconds)
	assert.Equal(t, 0, cfg.MaxRetries)
	assert.Equal(t, 4, cfg.CrawlWorkers)
	assert.Equal(t, 2020, cfg.SeniorYear)
	assert.Contains(t, cfg.TeamsURL, "WebTeams?OpenView")
	assert.Contains(t, cfg.MeetsURL, "Meets?OpenView")
}

func TestLoadDefaultsOnly(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, New(), cfg)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "swim.yaml")
	content := []byte("log_level: debug\ncrawl_workers: 8\nsenior_year: 2026\n")
	require.NoError(t, os.WriteFile(path, content, 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 8, cfg.CrawlWorkers)
	assert.Equal(t, 2026, cfg.SeniorYear)
	// Untouched fields keep their defaults.
	assert.Equal(t, 30, cfg.TimeoutSeconds)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "swim.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: debug\n"), 0644))

	t.Setenv("SWIM_LOG_LEVEL", "warn")
	t.Setenv("SWIM_MAX_RETRIES", "3")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 3, cfg.MaxRetries)
}

func TestLoadValidation(t *testing.T) {
	t.Setenv("SWIM_CRAWL_WORKERS", "0")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "crawl_workers")
}

func TestGraduationMapGenerated(t *testing.T) {
	cfg := New()
	cfg.SeniorYear = 2020

	years, err := cfg.GraduationMap()
	require.NoError(t, err)

	assert.Equal(t, "SR", years[2020])
	assert.Equal(t, "JR", years[2021])
	assert.Equal(t, "SO", years[2022])
	assert.Equal(t, "FR", years[2023])
	assert.Equal(t, "'8", years[2024])
	assert.Equal(t, "'7", years[2025])
}

func TestGraduationMapOverride(t *testing.T) {
	cfg := New()
	cfg.ClassYears = map[string]string{
		"2030": "SR",
		"2031": "JR",
	}

	years, err := cfg.GraduationMap()
	require.NoError(t, err)

	assert.Equal(t, map[int]string{2030: "SR", 2031: "JR"}, years)
}

func TestValidateRejectsBadClassYearKeys(t *testing.T) {
	cfg := New()
	cfg.ClassYears = map[string]string{"senior": "SR"}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "class_years")
}
