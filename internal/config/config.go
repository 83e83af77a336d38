// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads the site configuration from BANDSITE_* environment variables.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains example secrets that must be rejected.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// MinSessionSecretLength is the minimum length of the session secret.
const MinSessionSecretLength = 32

// MinSetupKeyLength is the minimum length of the one-time setup key.
const MinSetupKeyLength = 16

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string `env:"BANDSITE_DB_PATH" envDefault:"./data/bandsite.db"`
	SessionSecret string `env:"BANDSITE_SESSION_SECRET,required"`
	ServerHost    string `env:"BANDSITE_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"BANDSITE_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"BANDSITE_ENV" envDefault:"development"`
	LogLevel      string `env:"BANDSITE_LOG_LEVEL" envDefault:"info"`
	UploadsDir    string `env:"BANDSITE_UPLOADS_DIR" envDefault:"./uploads"`
	BaseURL       string `env:"BANDSITE_BASE_URL" envDefault:"http://localhost:8080"`
	SiteName      string `env:"BANDSITE_SITE_NAME" envDefault:"Mind's Eye View"`
	// DisallowCrawlers serves a robots.txt that blocks everything (staging).
	DisallowCrawlers bool `env:"BANDSITE_DISALLOW_CRAWLERS" envDefault:"false"`
	MaxUploadMB      int  `env:"BANDSITE_MAX_UPLOAD_MB" envDefault:"20"`

	// Cache configuration
	RedisURL    string `env:"BANDSITE_REDIS_URL"` // Optional, memory cache otherwise
	CachePrefix string `env:"BANDSITE_CACHE_PREFIX" envDefault:"bandsite:"`
	CacheTTL    int    `env:"BANDSITE_CACHE_TTL" envDefault:"300"` // seconds

	// Public API origins allowed by CORS. Empty means same-origin only.
	CORSOrigins []string `env:"BANDSITE_CORS_ORIGINS" envSeparator:","`

	// One-time admin bootstrap. The setup route is disabled when empty.
	SetupKey string `env:"BANDSITE_SETUP_KEY"`

	// Mail
	ResendAPIKey string `env:"BANDSITE_RESEND_API_KEY"`
	MailFrom     string `env:"BANDSITE_MAIL_FROM" envDefault:"Mind's Eye View <news@example.com>"`

	DoSeed           bool `env:"BANDSITE_DO_SEED" envDefault:"false"`
	DemoContent      bool `env:"BANDSITE_DEMO_CONTENT" envDefault:"false"`
	LogRetentionDays int  `env:"BANDSITE_LOG_RETENTION_DAYS" envDefault:"90"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// SetupEnabled reports whether the bootstrap route should be mounted.
func (c Config) SetupEnabled() bool {
	return c.SetupKey != ""
}

// MailEnabled reports whether outgoing mail goes through Resend.
func (c Config) MailEnabled() bool {
	return c.ResendAPIKey != ""
}

// CacheTTLDuration returns CacheTTL as a duration.
func (c Config) CacheTTLDuration() time.Duration {
	return time.Duration(c.CacheTTL) * time.Second
}

// MaxUploadBytes returns the multipart body limit for photo uploads.
func (c Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("BANDSITE_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, fmt.Errorf("BANDSITE_SESSION_SECRET is a known default value and must not be used")
		}
	}

	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("BANDSITE_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	if cfg.SetupKey != "" && len(cfg.SetupKey) < MinSetupKeyLength {
		return nil, fmt.Errorf("BANDSITE_SETUP_KEY must be at least %d bytes long", MinSetupKeyLength)
	}

	if cfg.MaxUploadMB <= 0 {
		return nil, fmt.Errorf("BANDSITE_MAX_UPLOAD_MB must be positive, got %d", cfg.MaxUploadMB)
	}

	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return cfg, nil
}

// hasMinimumEntropy checks that a secret mixes at least 3 character classes.
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
