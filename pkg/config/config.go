// Package config loads server configuration from an optional YAML
// file. Flags and environment variables override whatever the file
// provides; the file only exists so deployments can keep their
// settings in one place.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Default values for the server configuration.
const (
	DefaultPort            = "8080"
	DefaultCacheTTLSeconds = 600
	DefaultRatePerMinute   = 15
)

// Config holds all server-side settings.
type Config struct {
	// Port is the HTTP listen port (default 8080).
	Port string `yaml:"port"`

	// DBPath is the SQLite database file holding session records.
	// Empty means the server expects SessionServiceURL instead.
	DBPath string `yaml:"db_path"`

	// SessionServiceURL is the base URL of an upstream session
	// service, used when DBPath is empty.
	SessionServiceURL string `yaml:"session_service_url"`

	// CacheTTLSeconds bounds how long a computed score response may
	// be served from the memory cache (default 600).
	CacheTTLSeconds int `yaml:"cache_ttl_seconds"`

	// RatePerMinute is the per-IP request budget (default 15).
	RatePerMinute int `yaml:"rate_per_minute"`
}

// CacheTTL returns the response cache lifetime as a duration.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// Default returns a config populated with the default values.
func Default() Config {
	return Config{
		Port:            DefaultPort,
		CacheTTLSeconds: DefaultCacheTTLSeconds,
		RatePerMinute:   DefaultRatePerMinute,
	}
}

// Load reads a YAML config file and fills unset fields with defaults.
// An empty path returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config file: %w", err)
	}

	if cfg.Port == "" {
		cfg.Port = DefaultPort
	}
	if cfg.CacheTTLSeconds <= 0 {
		cfg.CacheTTLSeconds = DefaultCacheTTLSeconds
	}
	if cfg.RatePerMinute <= 0 {
		cfg.RatePerMinute = DefaultRatePerMinute
	}
	return cfg, nil
}
