package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/Ilikepi739/swim/internal/swimmer"
)

// envPrefix namespaces the environment variables read by Load.
const envPrefix = "SWIM_"

// configPathEnv names the environment variable pointing at an optional
// YAML config file.
const configPathEnv = "SWIM_CONFIG"

// Load builds a Config by layering defaults, an optional file, and
// environment variables. Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if SWIM_CONFIG is set, or path when non-empty
//  3. env (prefix SWIM_)
func Load(path string) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path == "" {
		path = os.Getenv(configPathEnv)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
	}

	// Environment variables: SWIM_LOG_LEVEL, SWIM_CRAWL_WORKERS, ...
	// Keys keep their underscores to match the koanf struct tags.
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the loaded configuration for values the CLI cannot
// run with.
func (c *Config) Validate() error {
	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout_seconds must be positive, got %d", c.TimeoutSeconds)
	}
	if c.RequestsPerSecond <= 0 {
		return fmt.Errorf("requests_per_second must be positive, got %v", c.RequestsPerSecond)
	}
	if c.RateBurst <= 0 {
		return fmt.Errorf("rate_burst must be positive, got %d", c.RateBurst)
	}
	if c.CrawlWorkers <= 0 {
		return fmt.Errorf("crawl_workers must be positive, got %d", c.CrawlWorkers)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max_retries must not be negative, got %d", c.MaxRetries)
	}
	if c.DataDir == "" {
		return fmt.Errorf("data_dir must not be empty")
	}
	for key := range c.ClassYears {
		if _, err := strconv.Atoi(key); err != nil {
			return fmt.Errorf("class_years key %q is not a graduation year", key)
		}
	}
	return nil
}

// GraduationMap resolves the active graduation-year to class-year
// mapping: the explicit class_years override when present, otherwise
// the mapping generated from senior_year.
func (c *Config) GraduationMap() (map[int]string, error) {
	if len(c.ClassYears) == 0 {
		return swimmer.ClassYearsFor(c.SeniorYear), nil
	}

	years := make(map[int]string, len(c.ClassYears))
	for key, label := range c.ClassYears {
		year, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("class_years key %q is not a graduation year", key)
		}
		years[year] = label
	}
	return years, nil
}
