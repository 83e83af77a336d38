// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/olegiv/bandsite/internal/store"
	"github.com/olegiv/bandsite/internal/testutil"
)

func TestScheduler_StartStop(t *testing.T) {
	s := New(testutil.TestLoggerSilent())

	if err := s.Add(Job{Name: "noop", Schedule: "@hourly", Run: func(context.Context) error { return nil }}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	s.Start()
	s.Stop()
}

func TestScheduler_AddValidation(t *testing.T) {
	s := New(testutil.TestLoggerSilent())
	run := func(context.Context) error { return nil }

	if err := s.Add(Job{Name: "bad", Schedule: "every tuesday", Run: run}); err == nil {
		t.Error("expected error for invalid cron expression")
	}
	if err := s.Add(Job{Schedule: "@daily", Run: run}); err == nil {
		t.Error("expected error for missing name")
	}
	if err := s.Add(Job{Name: "once", Schedule: "@daily", Run: run}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := s.Add(Job{Name: "once", Schedule: "@daily", Run: run}); err == nil {
		t.Error("expected error for duplicate name")
	}
}

func TestScheduler_ListAndTrigger(t *testing.T) {
	s := New(testutil.TestLoggerSilent())

	calls := 0
	boom := errors.New("boom")
	_ = s.Add(Job{Name: "b", Schedule: "*/5 * * * *", Run: func(context.Context) error { calls++; return nil }})
	_ = s.Add(Job{Name: "a", Schedule: "@daily", Run: func(context.Context) error { return boom }})

	jobs := s.List()
	if len(jobs) != 2 || jobs[0].Name != "a" || jobs[1].Schedule != "*/5 * * * *" {
		t.Fatalf("List = %+v", jobs)
	}

	if err := s.TriggerNow("b"); err != nil || calls != 1 {
		t.Errorf("TriggerNow(b) = %v, calls = %d", err, calls)
	}
	if err := s.TriggerNow("a"); !errors.Is(err, boom) {
		t.Errorf("TriggerNow(a) = %v, want boom", err)
	}
	if err := s.TriggerNow("missing"); err == nil {
		t.Error("expected error for unknown job")
	}
}

func TestScheduler_StopCancelsJobContext(t *testing.T) {
	s := New(testutil.TestLoggerSilent())

	var jobCtx context.Context
	_ = s.Add(Job{Name: "capture", Schedule: "@daily", Run: func(ctx context.Context) error {
		jobCtx = ctx
		return nil
	}})
	_ = s.TriggerNow("capture")
	s.Start()
	s.Stop()

	if jobCtx.Err() == nil {
		t.Error("job context should be cancelled after Stop")
	}
}

type fakeRemover struct {
	limit int
}

func (f *fakeRemover) ProcessPending(_ context.Context, limit int) (int, error) {
	f.limit = limit
	return 0, nil
}

func TestFileRemovalJob(t *testing.T) {
	r := &fakeRemover{}
	job := FileRemovalJob(r, 25)

	if job.Schedule != FileRemovalSchedule {
		t.Errorf("Schedule = %q", job.Schedule)
	}
	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if r.limit != 25 {
		t.Errorf("batch = %d, want 25", r.limit)
	}
}

func TestLogRetentionJob(t *testing.T) {
	db := testutil.TestMemoryDB(t)
	q := store.New(db)
	ctx := context.Background()
	now := time.Date(2026, 10, 18, 3, 0, 0, 0, time.UTC)

	for _, age := range []int{120, 10} {
		if _, err := q.CreateLogEntry(ctx, store.CreateLogEntryParams{
			Level:     "warning",
			Category:  "system",
			Message:   "old news",
			Metadata:  "{}",
			CreatedAt: now.AddDate(0, 0, -age),
		}); err != nil {
			t.Fatalf("CreateLogEntry: %v", err)
		}
	}

	job := LogRetentionJob(db, 90, func() time.Time { return now })
	if err := job.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}

	left, err := q.ListLogEntries(ctx, 10)
	if err != nil {
		t.Fatalf("ListLogEntries: %v", err)
	}
	if len(left) != 1 {
		t.Errorf("entries left = %d, want 1", len(left))
	}
}
