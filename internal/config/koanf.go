// Backoffice - Admin Console for the Games API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/backoffice

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/backoffice/config.yaml",
	"/etc/backoffice/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// Shipped defaults. They match the values the console has always started
// with so an unconfigured checkout keeps working against a local backend.
const (
	DefaultSessionSecret = "dev-secret-key-change-in-production"
	DefaultAdminToken    = "change-me-in-production"
	DefaultAdminPassword = "admin"
	DefaultBaseURL       = "http://localhost:8000"
)

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Backend: BackendConfig{
			BaseURL: DefaultBaseURL,
			Token:   DefaultAdminToken,
			Timeout: 0, // http.Client default: no timeout
			CircuitBreaker: CircuitBreakerConfig{
				Enabled:      false,
				MaxRequests:  3,
				Interval:     time.Minute,
				Timeout:      2 * time.Minute,
				MinRequests:  10,
				FailureRatio: 0.6,
			},
		},
		Server: ServerConfig{
			Port:        5000,
			Host:        "0.0.0.0",
			Timeout:     0,
			Environment: "production",
			Debug:       false,
		},
		Session: SessionConfig{
			Secret:     DefaultSessionSecret,
			CookieName: "backoffice_session",
			MaxAge:     0,
			Secure:     false,
		},
		Security: SecurityConfig{
			AdminPassword:  DefaultAdminPassword,
			LoginRateLimit: 10,
			LoginWindow:    time.Minute,
			CORSOrigins:    []string{},
		},
		API: APIConfig{
			DefaultPageSize: 50,
			MaxPageSize:     500,
		},
		Games: GamesConfig{
			MapLimit: 10000,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
//
// Precedence is ENV > File > Defaults. Development environments switch
// debug mode on, which in turn selects console logging at debug level.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// API_BASE -> backend.base_url, ADMIN_PASSWORD -> security.admin_password
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	cfg.applyEnvironment()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// applyEnvironment derives settings that depend on the environment name.
func (c *Config) applyEnvironment() {
	c.Server.Environment = strings.ToLower(strings.TrimSpace(c.Server.Environment))
	if c.IsDevelopment() {
		c.Server.Debug = true
	}
	if c.Server.Debug {
		c.Logging.Level = "debug"
		c.Logging.Format = "console"
	}
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars arrive as strings while the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps environment variable names (lower-cased) to koanf paths.
// The short legacy names (API_BASE, ADMIN_TOKEN, PORT) are kept as-is.
var envMappings = map[string]string{
	// Backend
	"api_base":                      "backend.base_url",
	"admin_token":                   "backend.token",
	"backend_timeout":               "backend.timeout",
	"circuit_breaker_enabled":       "backend.circuit_breaker.enabled",
	"circuit_breaker_max_requests":  "backend.circuit_breaker.max_requests",
	"circuit_breaker_interval":      "backend.circuit_breaker.interval",
	"circuit_breaker_timeout":       "backend.circuit_breaker.timeout",
	"circuit_breaker_min_requests":  "backend.circuit_breaker.min_requests",
	"circuit_breaker_failure_ratio": "backend.circuit_breaker.failure_ratio",

	// Server
	"port":         "server.port",
	"http_port":    "server.port",
	"http_host":    "server.host",
	"http_timeout": "server.timeout",
	"environment":  "server.environment",
	"flask_env":    "server.environment",
	"debug":        "server.debug",

	// Session
	"secret_key":          "session.secret",
	"flask_secret_key":    "session.secret",
	"session_secret":      "session.secret",
	"session_cookie_name": "session.cookie_name",
	"session_max_age":     "session.max_age",
	"session_secure":      "session.secure",

	// Security
	"admin_password":    "security.admin_password",
	"login_rate_limit":  "security.login_rate_limit",
	"login_rate_window": "security.login_window",
	"cors_origins":      "security.cors_origins",

	// Games / pagination
	"default_page_size": "api.default_page_size",
	"max_page_size":     "api.max_page_size",
	"games_map_limit":   "games.map_limit",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Metrics
	"metrics_enabled": "metrics.enabled",
	"metrics_path":    "metrics.path",
}

// envPrecedence orders the names that share a koanf path, highest first.
// An empty name is ignored, as is any name while one ahead of it is set.
var envPrecedence = map[string][]string{
	"session.secret":     {"SESSION_SECRET", "SECRET_KEY", "FLASK_SECRET_KEY"},
	"server.port":        {"PORT", "HTTP_PORT"},
	"server.environment": {"ENVIRONMENT", "FLASK_ENV"},
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - API_BASE -> backend.base_url
//   - ADMIN_TOKEN -> backend.token
//   - SECRET_KEY -> session.secret
//   - PORT -> server.port
func envTransformFunc(key string) string {
	return transformEnvKey(key, os.Getenv)
}

func transformEnvKey(key string, lookup func(string) string) string {
	mapped, ok := envMappings[strings.ToLower(key)]
	if !ok {
		// Unmapped keys are skipped so unrelated environment variables never
		// leak into the configuration.
		return ""
	}

	names, shared := envPrecedence[mapped]
	if !shared {
		return mapped
	}
	if lookup(key) == "" {
		return ""
	}
	for _, name := range names {
		if strings.EqualFold(name, key) {
			break
		}
		if lookup(name) != "" {
			return ""
		}
	}
	return mapped
}
