// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/olegiv/bandsite/internal/store"
)

// Built-in job names and schedules.
const (
	FileRemovalJobName  = "file_removals"
	FileRemovalSchedule = "*/5 * * * *"

	LogRetentionJobName  = "log_retention"
	LogRetentionSchedule = "@daily"
)

// PendingRemover drains the queue of files whose records were deleted.
type PendingRemover interface {
	ProcessPending(ctx context.Context, limit int) (int, error)
}

// FileRemovalJob retries queued file removals.
func FileRemovalJob(r PendingRemover, batch int) Job {
	return Job{
		Name:        FileRemovalJobName,
		Description: "Retry removing files of deleted photos",
		Schedule:    FileRemovalSchedule,
		Timeout:     2 * time.Minute,
		Run: func(ctx context.Context) error {
			_, err := r.ProcessPending(ctx, batch)
			return err
		},
	}
}

// LogRetentionJob deletes log entries older than days.
func LogRetentionJob(db *sql.DB, days int, now func() time.Time) Job {
	queries := store.New(db)
	return Job{
		Name:        LogRetentionJobName,
		Description: "Delete log entries past the retention period",
		Schedule:    LogRetentionSchedule,
		Timeout:     time.Minute,
		Run: func(ctx context.Context) error {
			cutoff := now().UTC().AddDate(0, 0, -days)
			n, err := queries.DeleteLogEntriesBefore(ctx, cutoff)
			if err != nil {
				return fmt.Errorf("pruning log entries: %w", err)
			}
			if n > 0 {
				slog.Info("pruned old log entries", "deleted", n, "before", cutoff)
			}
			return nil
		},
	}
}
