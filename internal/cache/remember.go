// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"
)

// Remember returns the JSON value cached under key, or calls load, caches
// its result and returns it. Cache failures are logged and never fail the
// caller; load errors are returned and nothing is cached.
func Remember[T any](ctx context.Context, c Cache, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	data, err := c.Get(ctx, key)
	if err == nil {
		var v T
		if jsonErr := json.Unmarshal(data, &v); jsonErr == nil {
			return v, nil
		}
		slog.Warn("discarding undecodable cache entry", "key", key)
	} else if !errors.Is(err, ErrCacheMiss) {
		slog.Warn("cache read failed", "key", key, "error", err)
	}

	v, err := load(ctx)
	if err != nil {
		return v, err
	}

	if data, err := json.Marshal(v); err == nil {
		if err := c.Set(ctx, key, data, ttl); err != nil {
			slog.Warn("cache write failed", "key", key, "error", err)
		}
	}
	return v, nil
}
