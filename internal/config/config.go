// Package config handles loading application configuration. All config is
// centralized here so no other package reads env vars directly. Settings come
// from environment variables with sensible development defaults; an optional
// YAML file (ECONCAL_CONFIG) overlays the env values for deployments that
// prefer a mounted config file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/finbrief/econcal/internal/dates"
)

// Config holds all application configuration. Populated at startup and
// passed to other packages via dependency injection.
type Config struct {
	// Env is the runtime environment: "development" or "production".
	Env string `yaml:"env"`

	// Port is the HTTP listen port (default: 8080).
	Port int `yaml:"port"`

	// BaseURL is the public-facing URL used for absolute links and CORS.
	BaseURL string `yaml:"base_url"`

	// Upstream holds the financial-events API client settings.
	Upstream UpstreamConfig `yaml:"upstream"`

	// Redis holds Redis connection settings for the response cache.
	Redis RedisConfig `yaml:"redis"`

	// Calendar holds timezone and refresh settings.
	Calendar CalendarConfig `yaml:"calendar"`
}

// UpstreamConfig holds settings for the upstream financial-events API.
type UpstreamConfig struct {
	// BaseURL is the API root, e.g. "https://api.example.com/v1".
	BaseURL string `yaml:"base_url"`

	// APIKey is sent as X-API-Key when non-empty.
	APIKey string `yaml:"api_key"`

	// Timeout bounds each upstream request.
	Timeout time.Duration `yaml:"timeout"`
}

// RedisConfig holds Redis connection parameters.
type RedisConfig struct {
	// URL is the Redis connection URL (e.g. "redis://localhost:6379").
	URL string `yaml:"url"`

	// CacheTTL is how long upstream responses stay cached.
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

// CalendarConfig holds the timezone bases and the cache refresh schedule.
type CalendarConfig struct {
	// PublisherTimezone frames "is this event still upcoming". Events are
	// scheduled in this zone regardless of where the viewer is.
	PublisherTimezone string `yaml:"publisher_timezone"`

	// DefaultTimezone is the display zone used when the viewer has not
	// picked one (or picked one off the allow-list).
	DefaultTimezone string `yaml:"default_timezone"`

	// RefreshCron is a cron expression for warming the events and report
	// caches. Empty disables the warmer.
	RefreshCron string `yaml:"refresh_cron"`
}

// Load reads configuration from environment variables, overlays the optional
// YAML file named by ECONCAL_CONFIG, and validates the result.
func Load() (*Config, error) {
	cfg := &Config{
		Env:     getEnv("ENV", "development"),
		Port:    getEnvInt("PORT", 8080),
		BaseURL: getEnv("BASE_URL", "http://localhost:8080"),

		Upstream: UpstreamConfig{
			BaseURL: getEnv("UPSTREAM_BASE_URL", "http://localhost:9090"),
			APIKey:  getEnv("UPSTREAM_API_KEY", ""),
			Timeout: getEnvDuration("UPSTREAM_TIMEOUT", 10*time.Second),
		},

		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			CacheTTL: getEnvDuration("CACHE_TTL", 5*time.Minute),
		},

		Calendar: CalendarConfig{
			PublisherTimezone: getEnv("PUBLISHER_TIMEZONE", dates.PublisherTimezone),
			DefaultTimezone:   getEnv("DEFAULT_TIMEZONE", dates.PublisherTimezone),
			RefreshCron:       getEnv("REFRESH_CRON", "*/15 * * * *"),
		},
	}

	if path := getEnv("ECONCAL_CONFIG", ""); path != "" {
		if err := overlayFile(cfg, path); err != nil {
			return nil, err
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// overlayFile unmarshals a YAML file over the env-derived config. Fields
// absent from the file keep their env values.
func overlayFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

// validate rejects configurations that would misbehave at runtime and fills
// zero durations with their defaults.
func (c *Config) validate() error {
	if c.Upstream.BaseURL == "" {
		return fmt.Errorf("UPSTREAM_BASE_URL is required")
	}
	if !dates.IsValidTimezone(c.Calendar.PublisherTimezone) {
		return fmt.Errorf("unsupported publisher timezone %q", c.Calendar.PublisherTimezone)
	}
	if !dates.IsValidTimezone(c.Calendar.DefaultTimezone) {
		return fmt.Errorf("unsupported default timezone %q", c.Calendar.DefaultTimezone)
	}
	if c.Upstream.Timeout <= 0 {
		c.Upstream.Timeout = 10 * time.Second
	}
	if c.Redis.CacheTTL <= 0 {
		c.Redis.CacheTTL = 5 * time.Minute
	}
	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	env := strings.ToLower(c.Env)
	return env == "development" || env == "dev"
}

// --- Helper functions for reading environment variables ---

// getEnv reads a string env var or returns the default.
func getEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return defaultVal
}

// getEnvInt reads an integer env var or returns the default.
func getEnvInt(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// getEnvDuration reads a duration env var (e.g. "10s") or returns the default.
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
