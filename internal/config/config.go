// Package config defines the CLI configuration and its loading order:
// struct defaults, then an optional YAML file, then environment
// variables with the SWIM_ prefix.
package config

import (
	"github.com/Ilikepi739/swim/internal/listing"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFile, when set, adds a rotated JSON log file alongside stderr.
	LogFile string `koanf:"log_file"`

	// DataDir holds snapshot files.
	DataDir string `koanf:"data_dir"`

	// UserAgent is sent on every page fetch.
	UserAgent string `koanf:"user_agent"`

	// TimeoutSeconds bounds each page fetch.
	TimeoutSeconds int `koanf:"timeout_seconds"`

	// RequestsPerSecond and RateBurst shape the polite rate limit.
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	RateBurst         int     `koanf:"rate_burst"`

	// MaxRetries enables fetch retries when positive. Zero preserves
	// the propagate-on-first-failure behavior.
	MaxRetries int `koanf:"max_retries"`

	// CrawlWorkers bounds concurrent date-page fetches in the
	// all-meets crawl. Width 1 crawls sequentially.
	CrawlWorkers int `koanf:"crawl_workers"`

	// PageCacheSeconds enables the in-memory page cache when positive.
	PageCacheSeconds int `koanf:"page_cache_seconds"`

	// Section endpoints.
	TeamsURL       string `koanf:"teams_url"`
	MeetsURL       string `koanf:"meets_url"`
	SwimmerBaseURL string `koanf:"swimmer_base_url"`
	MeetBaseURL    string `koanf:"meet_base_url"`

	// SeniorYear anchors the graduation-year to class-year mapping.
	SeniorYear int `koanf:"senior_year"`

	// ClassYears optionally overrides the generated mapping. Keys are
	// graduation years as strings (koanf map keys are strings).
	ClassYears map[string]string `koanf:"class_years"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		DataDir:           "~/.local/share/swim",
		UserAgent:         "swim-cli/1.0 (github.com/Ilikepi739/swim)",
		TimeoutSeconds:    30,
		RequestsPerSecond: 2,
		RateBurst:         1,
		MaxRetries:        0,
		CrawlWorkers:      listing.DefaultCrawlWorkers,
		PageCacheSeconds:  0,
		TeamsURL:          listing.DefaultTeamsURL,
		MeetsURL:          listing.DefaultMeetsURL,
		SwimmerBaseURL:    listing.DefaultSwimmerBaseURL,
		MeetBaseURL:       listing.DefaultMeetBaseURL,
		SeniorYear:        2020,
	}
}
