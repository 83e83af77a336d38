// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs the site's periodic maintenance jobs.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// cronParser accepts standard five-field expressions and descriptors like @daily.
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// Job is a named unit of periodic work.
type Job struct {
	Name        string
	Description string
	Schedule    string
	Timeout     time.Duration
	Run         func(ctx context.Context) error
}

// JobInfo is the public view of a registered job.
type JobInfo struct {
	Name        string
	Description string
	Schedule    string
	LastRun     time.Time
	NextRun     time.Time
}

type registeredJob struct {
	job     Job
	entryID cron.EntryID
}

// Scheduler wraps a cron instance with named jobs that can also be
// triggered on demand.
type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger

	mu   sync.RWMutex
	jobs map[string]*registeredJob

	// base is cancelled by Stop so running jobs see shutdown.
	base   context.Context
	cancel context.CancelFunc
}

// New creates a scheduler. Jobs are added with Add before Start.
func New(logger *slog.Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron: cron.New(cron.WithParser(cronParser), cron.WithChain(
			cron.SkipIfStillRunning(cron.DiscardLogger),
		)),
		logger: logger,
		jobs:   make(map[string]*registeredJob),
		base:   ctx,
		cancel: cancel,
	}
}

// Add registers job under its schedule.
func (s *Scheduler) Add(job Job) error {
	if job.Name == "" || job.Run == nil {
		return fmt.Errorf("job needs a name and a run function")
	}
	if _, err := cronParser.Parse(job.Schedule); err != nil {
		return fmt.Errorf("invalid cron expression %q for %s: %w", job.Schedule, job.Name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[job.Name]; exists {
		return fmt.Errorf("job already registered: %s", job.Name)
	}

	id, err := s.cron.AddFunc(job.Schedule, func() {
		if err := s.run(job); err != nil {
			s.logger.Error("scheduled job failed", "job", job.Name, "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("adding job %s: %w", job.Name, err)
	}

	s.jobs[job.Name] = &registeredJob{job: job, entryID: id}
	s.logger.Debug("registered scheduled job", "job", job.Name, "schedule", job.Schedule)
	return nil
}

// Start begins running jobs on their schedules.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
}

// Stop cancels running jobs and waits for them to return.
func (s *Scheduler) Stop() {
	s.cancel()
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// List returns all registered jobs sorted by name.
func (s *Scheduler) List() []JobInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]JobInfo, 0, len(s.jobs))
	for _, rj := range s.jobs {
		entry := s.cron.Entry(rj.entryID)
		result = append(result, JobInfo{
			Name:        rj.job.Name,
			Description: rj.job.Description,
			Schedule:    rj.job.Schedule,
			LastRun:     entry.Prev,
			NextRun:     entry.Next,
		})
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// TriggerNow runs the named job immediately in the calling goroutine.
func (s *Scheduler) TriggerNow(name string) error {
	s.mu.RLock()
	rj, ok := s.jobs[name]
	s.mu.RUnlock()

	if !ok {
		return fmt.Errorf("job not found: %s", name)
	}

	s.logger.Info("manually triggering job", "job", name)
	return s.run(rj.job)
}

func (s *Scheduler) run(job Job) error {
	ctx := s.base
	if job.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, job.Timeout)
		defer cancel()
	}

	start := time.Now()
	err := job.Run(ctx)
	s.logger.Debug("scheduled job finished", "job", job.Name, "duration", time.Since(start), "error", err)
	return err
}
