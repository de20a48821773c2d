// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads the Pawradise web configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	SessionSecret string `env:"PAWRADISE_SESSION_SECRET,required"`
	ServerHost    string `env:"PAWRADISE_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"PAWRADISE_SERVER_PORT" envDefault:"3000"`
	Env           string `env:"PAWRADISE_ENV" envDefault:"development"`
	LogLevel      string `env:"PAWRADISE_LOG_LEVEL" envDefault:"info"`
	DBPath        string `env:"PAWRADISE_DB_PATH" envDefault:"./data/sessions.db"`

	// Backend REST API
	APIURL        string        `env:"PAWRADISE_API_URL" envDefault:"http://localhost:8080"`
	APITimeout    time.Duration `env:"PAWRADISE_API_TIMEOUT" envDefault:"15s"`
	APIMaxRetries int           `env:"PAWRADISE_API_MAX_RETRIES" envDefault:"2"`

	// Redis is optional; when set it backs the guide cache and the cart.
	RedisURL      string        `env:"PAWRADISE_REDIS_URL"`
	CachePrefix   string        `env:"PAWRADISE_CACHE_PREFIX" envDefault:"pawradise:"`
	GuideCacheTTL time.Duration `env:"PAWRADISE_GUIDE_CACHE_TTL" envDefault:"10m"`
	CartTTL       time.Duration `env:"PAWRADISE_CART_TTL" envDefault:"720h"`

	MetricsAllowedCIDRs []string `env:"PAWRADISE_METRICS_CIDRS" envSeparator:"," envDefault:"127.0.0.1/32,::1/128"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedis returns true if Redis is configured.
func (c Config) UseRedis() bool {
	return c.RedisURL != ""
}

// MinSessionSecretLength is the minimum required length for the session secret.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("PAWRADISE_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, errors.New("PAWRADISE_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("PAWRADISE_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	u, err := url.Parse(cfg.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("PAWRADISE_API_URL must be an absolute http(s) URL, got %q", cfg.APIURL)
	}
	cfg.APIURL = strings.TrimSuffix(cfg.APIURL, "/")

	if cfg.APIMaxRetries < 0 {
		cfg.APIMaxRetries = 0
	}

	return cfg, nil
}

// SlogLevel maps the configured log level to a slog.Level.
func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
