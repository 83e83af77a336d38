// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"log/slog"
	"time"
)

// Options selects and configures the cache backend.
type Options struct {
	RedisURL   string
	Prefix     string
	DefaultTTL time.Duration
}

// New returns a Redis cache when RedisURL is set and reachable, and a
// memory cache otherwise.
func New(ctx context.Context, opts Options) Cache {
	if opts.RedisURL != "" {
		rc, err := NewRedisCache(ctx, RedisOptions{
			URL:        opts.RedisURL,
			Prefix:     opts.Prefix,
			DefaultTTL: opts.DefaultTTL,
		})
		if err == nil {
			slog.Info("using redis cache", "prefix", opts.Prefix)
			return rc
		}
		slog.Warn("redis unavailable, falling back to memory cache", "error", err)
	}
	return NewMemoryCache(opts.DefaultTTL, time.Minute)
}
