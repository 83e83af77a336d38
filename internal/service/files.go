// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/olegiv/bandsite/internal/store"
)

// DefaultRemovalBatch is how many queued paths one retry pass handles.
const DefaultRemovalBatch = 100

// FileRemover deletes files queued in file_removals. A path that is
// already gone counts as removed.
type FileRemover struct {
	queries *store.Queries
	now     func() time.Time
	remove  func(string) error
}

// NewFileRemover creates a FileRemover over db.
func NewFileRemover(db *sql.DB) *FileRemover {
	return &FileRemover{queries: store.New(db), now: time.Now, remove: os.Remove}
}

// Remove deletes the file behind item and dequeues it. On failure the
// attempt is recorded and the entry stays queued.
func (r *FileRemover) Remove(ctx context.Context, item store.FileRemoval) error {
	err := r.remove(item.Path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		if dqErr := r.queries.DeleteFileRemoval(ctx, item.ID); dqErr != nil {
			return fmt.Errorf("dequeuing %s: %w", item.Path, dqErr)
		}
		return nil
	}

	slog.Warn("file removal failed, will retry",
		"category", "file", "path", item.Path, "attempts", item.Attempts+1, "error", err)
	if recErr := r.queries.RecordFileRemovalFailure(ctx, store.RecordFileRemovalFailureParams{
		LastError: err.Error(),
		UpdatedAt: r.now().UTC(),
		ID:        item.ID,
	}); recErr != nil {
		return fmt.Errorf("recording removal failure for %s: %w", item.Path, recErr)
	}
	return fmt.Errorf("removing %s: %w", item.Path, err)
}

// ProcessPending retries up to limit queued removals and reports how many
// succeeded. Individual failures stay queued and do not stop the pass.
func (r *FileRemover) ProcessPending(ctx context.Context, limit int) (int, error) {
	if limit <= 0 {
		limit = DefaultRemovalBatch
	}

	items, err := r.queries.ListFileRemovals(ctx, int64(limit))
	if err != nil {
		return 0, fmt.Errorf("listing queued removals: %w", err)
	}

	removed := 0
	for _, item := range items {
		if ctx.Err() != nil {
			return removed, ctx.Err()
		}
		if err := r.Remove(ctx, item); err == nil {
			removed++
		}
	}

	if removed > 0 {
		slog.Info("queued files removed", "count", removed, "remaining", len(items)-removed)
	}
	return removed, nil
}
