// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Loading and validation errors wrap this package's sentinels.
package config

import (
	"fmt"
	"strings"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// PageSize is the list page size used when a request does not set one.
	PageSize int `koanf:"page_size"`

	// MaxPageSize caps GET /players?page_size.
	MaxPageSize int `koanf:"max_page_size"`

	// Seed loads the five-record starting roster.
	Seed bool `koanf:"seed"`

	// RateLimitRPS and RateLimitBurst shape the token bucket in front of
	// mutating routes. A non-positive RPS disables limiting.
	RateLimitRPS   float64 `koanf:"rate_limit_rps"`
	RateLimitBurst int     `koanf:"rate_limit_burst"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		LogFormat:      "text",
		Addr:           ":9080",
		PageSize:       5,
		MaxPageSize:    100,
		Seed:           true,
		RateLimitRPS:   50,
		RateLimitBurst: 100,
	}
}

// Validate reports the first unusable setting, wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.PageSize <= 0:
		return fmt.Errorf("%w: page_size must be positive, got %d", ErrInvalidConfig, c.PageSize)
	case c.MaxPageSize < c.PageSize:
		return fmt.Errorf("%w: max_page_size %d is below page_size %d", ErrInvalidConfig, c.MaxPageSize, c.PageSize)
	case c.RateLimitRPS > 0 && c.RateLimitBurst <= 0:
		return fmt.Errorf("%w: rate_limit_burst must be positive when rate_limit_rps is set", ErrInvalidConfig)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log_format %q", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}
