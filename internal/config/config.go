// Backoffice - Admin Console for the Games API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/backoffice

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration loaded from defaults, an
// optional config file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in defaults for every setting
//  2. Config File: Optional YAML config file (config.yaml)
//  3. Environment Variables: Override any setting
//
// Configuration Categories:
//
//  1. Backend: base URL, bearer token and transport settings of the games API
//  2. Server: listen address, environment, debug mode
//  3. Session & Security: cookie signing secret, admin password, login rate limit
//  4. Games: page sizes and the map fetch limit
//  5. Observability: logging and metrics
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("Failed to load configuration")
//	}
//	client := backend.NewClient(&cfg.Backend)
//
// Thread Safety:
// Config is immutable after Load() and safe for concurrent read access.
type Config struct {
	Backend  BackendConfig  `koanf:"backend"`
	Server   ServerConfig   `koanf:"server"`
	Session  SessionConfig  `koanf:"session"`
	Security SecurityConfig `koanf:"security"`
	API      APIConfig      `koanf:"api"`
	Games    GamesConfig    `koanf:"games"`
	Logging  LoggingConfig  `koanf:"logging"`
	Metrics  MetricsConfig  `koanf:"metrics"`
}

// BackendConfig holds the connection settings of the games API.
//
// Environment Variables:
//   - API_BASE: backend base URL (default: http://localhost:8000)
//   - ADMIN_TOKEN: bearer token sent on every backend call
//   - BACKEND_TIMEOUT: per-request timeout, 0 disables it (default: 0)
//   - CIRCUIT_BREAKER_ENABLED: wrap backend calls in a circuit breaker (default: false)
type BackendConfig struct {
	BaseURL        string               `koanf:"base_url"`
	Token          string               `koanf:"token"`
	Timeout        time.Duration        `koanf:"timeout"`
	CircuitBreaker CircuitBreakerConfig `koanf:"circuit_breaker"`
}

// CircuitBreakerConfig controls the optional backend circuit breaker.
type CircuitBreakerConfig struct {
	Enabled bool `koanf:"enabled"`
	// MaxRequests allowed through while half-open.
	MaxRequests uint32 `koanf:"max_requests"`
	// Interval after which closed-state counts are cleared.
	Interval time.Duration `koanf:"interval"`
	// Timeout before an open breaker moves to half-open.
	Timeout time.Duration `koanf:"timeout"`
	// MinRequests before the failure ratio is evaluated.
	MinRequests uint32 `koanf:"min_requests"`
	// FailureRatio at or above which the breaker trips.
	FailureRatio float64 `koanf:"failure_ratio"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`     // read/write timeout, 0 disables
	Environment string        `koanf:"environment"` // "development", "staging", "production"
	Debug       bool          `koanf:"debug"`
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// SessionConfig holds the signed session cookie settings.
//
// Environment Variables:
//   - SECRET_KEY / SESSION_SECRET: cookie signing secret
//   - SESSION_MAX_AGE: cookie lifetime, 0 means a browser-session cookie (default: 0)
//   - SESSION_SECURE: set the Secure attribute (default: false)
type SessionConfig struct {
	Secret     string        `koanf:"secret"`
	CookieName string        `koanf:"cookie_name"`
	MaxAge     time.Duration `koanf:"max_age"`
	Secure     bool          `koanf:"secure"`
}

// SecurityConfig holds login and cross-origin settings
type SecurityConfig struct {
	AdminPassword  string        `koanf:"admin_password"`
	LoginRateLimit int           `koanf:"login_rate_limit"` // POST /login attempts per window per IP, 0 disables
	LoginWindow    time.Duration `koanf:"login_window"`
	CORSOrigins    []string      `koanf:"cors_origins"`
}

// APIConfig holds pagination settings for the games listings
type APIConfig struct {
	DefaultPageSize int `koanf:"default_page_size"`
	MaxPageSize     int `koanf:"max_page_size"`
}

// GamesConfig holds settings for the games views.
type GamesConfig struct {
	// MapLimit is the number of games requested per listing for the map view.
	MapLimit int `koanf:"map_limit"`
}

// LoggingConfig holds logging configuration.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `koanf:"enabled"`
	Path    string `koanf:"path"`
}

// Load reads configuration from all sources in order:
//  1. Built-in defaults
//  2. Config file (config.yaml if it exists, or the path in CONFIG_PATH)
//  3. Environment variables
//
// See LoadWithKoanf() for the underlying implementation.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
