// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package logging provides a slog handler that keeps a copy of warnings and
// errors in the log_entries table, where the retention job later prunes them.
package logging

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/olegiv/bandsite/internal/store"
)

// Log entry levels.
const (
	LevelInfo    = "info"
	LevelWarning = "warning"
	LevelError   = "error"
)

// Log entry categories.
const (
	CategoryAuth      = "auth"
	CategoryContent   = "content"
	CategorySubscribe = "subscribe"
	CategoryFile      = "file"
	CategoryMail      = "mail"
	CategoryCache     = "cache"
	CategorySystem    = "system"
)

const categoryKey = "category"

// LogEntryHandler wraps another handler and also writes records at or above
// its level to log_entries.
type LogEntryHandler struct {
	inner   slog.Handler
	queries *store.Queries
	level   slog.Level
	attrs   []slog.Attr
}

// NewLogEntryHandler wraps inner, persisting WARN and above.
func NewLogEntryHandler(inner slog.Handler, db *sql.DB) *LogEntryHandler {
	return NewLogEntryHandlerWithLevel(inner, db, slog.LevelWarn)
}

// NewLogEntryHandlerWithLevel wraps inner, persisting records at level and above.
func NewLogEntryHandlerWithLevel(inner slog.Handler, db *sql.DB, level slog.Level) *LogEntryHandler {
	return &LogEntryHandler{
		inner:   inner,
		queries: store.New(db),
		level:   level,
	}
}

// Enabled implements slog.Handler.
func (h *LogEntryHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level) || level >= h.level
}

// Handle implements slog.Handler.
func (h *LogEntryHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.inner.Enabled(ctx, r.Level) {
		if err := h.inner.Handle(ctx, r); err != nil {
			return err
		}
	}

	if r.Level >= h.level {
		h.persist(r)
	}
	return nil
}

// WithAttrs implements slog.Handler.
func (h *LogEntryHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &LogEntryHandler{
		inner:   h.inner.WithAttrs(attrs),
		queries: h.queries,
		level:   h.level,
		attrs:   append(append([]slog.Attr(nil), h.attrs...), attrs...),
	}
}

// WithGroup implements slog.Handler.
func (h *LogEntryHandler) WithGroup(name string) slog.Handler {
	return &LogEntryHandler{
		inner:   h.inner.WithGroup(name),
		queries: h.queries,
		level:   h.level,
		attrs:   h.attrs,
	}
}

func (h *LogEntryHandler) persist(r slog.Record) {
	attrs := make([]slog.Attr, 0, len(h.attrs)+r.NumAttrs())
	attrs = append(attrs, h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, a)
		return true
	})

	created := r.Time
	if created.IsZero() {
		created = time.Now()
	}

	// The request context may already be cancelled.
	_, _ = h.queries.CreateLogEntry(context.Background(), store.CreateLogEntryParams{
		Level:     levelName(r.Level),
		Category:  category(r.Message, attrs),
		Message:   r.Message,
		Metadata:  metadata(attrs),
		CreatedAt: created.UTC(),
	})
}

func levelName(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return LevelError
	case level >= slog.LevelWarn:
		return LevelWarning
	default:
		return LevelInfo
	}
}

// category returns an explicit category attribute or infers one from the message.
func category(msg string, attrs []slog.Attr) string {
	for _, a := range attrs {
		if a.Key == categoryKey {
			if c := a.Value.String(); c != "" {
				return c
			}
		}
	}

	msg = strings.ToLower(msg)
	switch {
	case strings.Contains(msg, "login") || strings.Contains(msg, "password") ||
		strings.Contains(msg, "session") || strings.Contains(msg, "admin"):
		return CategoryAuth
	case strings.Contains(msg, "subscri"):
		return CategorySubscribe
	case strings.Contains(msg, "file") || strings.Contains(msg, "photo") || strings.Contains(msg, "upload"):
		return CategoryFile
	case strings.Contains(msg, "mail"):
		return CategoryMail
	case strings.Contains(msg, "cache"):
		return CategoryCache
	case strings.Contains(msg, "event") || strings.Contains(msg, "video"):
		return CategoryContent
	default:
		return CategorySystem
	}
}

// metadata encodes attrs, minus the category, as a flat JSON object.
func metadata(attrs []slog.Attr) string {
	m := make(map[string]string, len(attrs))
	for _, a := range attrs {
		if a.Key == categoryKey || a.Key == "" {
			continue
		}
		m[a.Key] = a.Value.Resolve().String()
	}
	if len(m) == 0 {
		return "{}"
	}

	data, err := json.Marshal(m)
	if err != nil {
		return "{}"
	}
	return string(data)
}
