// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package logging

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/olegiv/bandsite/internal/store"
	"github.com/olegiv/bandsite/internal/testutil"
)

// discardHandler is a slog.Handler that discards all logs.
type discardHandler struct{}

func (h discardHandler) Enabled(context.Context, slog.Level) bool  { return true }
func (h discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (h discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return h }
func (h discardHandler) WithGroup(string) slog.Handler             { return h }

func entries(t *testing.T, q *store.Queries) []store.LogEntry {
	t.Helper()
	list, err := q.ListLogEntries(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListLogEntries: %v", err)
	}
	return list
}

func TestLogEntryHandler_PersistsWarnAndAbove(t *testing.T) {
	db := testutil.TestMemoryDB(t)
	q := store.New(db)
	logger := slog.New(NewLogEntryHandler(discardHandler{}, db))

	logger.Info("server started")
	logger.Debug("noise")
	if got := entries(t, q); len(got) != 0 {
		t.Fatalf("info/debug persisted: %+v", got)
	}

	logger.Error("database connection failed", "host", "localhost", "port", 5432)

	got := entries(t, q)
	if len(got) != 1 {
		t.Fatalf("got %d entries, want 1", len(got))
	}
	e := got[0]
	if e.Level != LevelError {
		t.Errorf("Level = %q, want %q", e.Level, LevelError)
	}
	if e.Category != CategorySystem {
		t.Errorf("Category = %q, want %q", e.Category, CategorySystem)
	}

	var meta map[string]string
	if err := json.Unmarshal([]byte(e.Metadata), &meta); err != nil {
		t.Fatalf("metadata is not JSON: %q", e.Metadata)
	}
	if meta["host"] != "localhost" || meta["port"] != "5432" {
		t.Errorf("metadata = %v", meta)
	}
}

func TestLogEntryHandler_Category(t *testing.T) {
	tests := []struct {
		msg   string
		attrs []any
		want  string
	}{
		{"failed login attempt", nil, CategoryAuth},
		{"failed to send welcome email", nil, CategoryMail},
		{"file removal failed, will retry", nil, CategoryFile},
		{"anything", []any{"category", "custom"}, "custom"},
		{"cache write failed", nil, CategoryCache},
		{"disk almost full", nil, CategorySystem},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			db := testutil.TestMemoryDB(t)
			slog.New(NewLogEntryHandler(discardHandler{}, db)).Warn(tt.msg, tt.attrs...)

			got := entries(t, store.New(db))
			if len(got) != 1 {
				t.Fatalf("got %d entries", len(got))
			}
			if got[0].Category != tt.want {
				t.Errorf("Category = %q, want %q", got[0].Category, tt.want)
			}
			if got[0].Level != LevelWarning {
				t.Errorf("Level = %q, want %q", got[0].Level, LevelWarning)
			}
		})
	}
}

func TestLogEntryHandler_WithAttrsKeepsCategory(t *testing.T) {
	db := testutil.TestMemoryDB(t)
	logger := slog.New(NewLogEntryHandler(discardHandler{}, db)).With("category", CategorySubscribe, "source", "api")

	logger.Warn("rate limit exceeded")

	got := entries(t, store.New(db))
	if len(got) != 1 {
		t.Fatalf("got %d entries", len(got))
	}
	if got[0].Category != CategorySubscribe {
		t.Errorf("Category = %q, want %q", got[0].Category, CategorySubscribe)
	}
	if got[0].Metadata != `{"source":"api"}` {
		t.Errorf("Metadata = %q", got[0].Metadata)
	}
}

func TestLogEntryHandler_CustomLevel(t *testing.T) {
	db := testutil.TestMemoryDB(t)
	logger := slog.New(NewLogEntryHandlerWithLevel(discardHandler{}, db, slog.LevelError))

	logger.Warn("just a warning")
	logger.Error("real problem")

	got := entries(t, store.New(db))
	if len(got) != 1 || got[0].Message != "real problem" {
		t.Errorf("entries = %+v", got)
	}
}
