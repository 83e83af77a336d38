// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service implements the site's operations on top of the store:
// admin authentication, content management, subscriptions and the cached
// public read views.
package service

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"

	"github.com/olegiv/bandsite/internal/cache"
)

var (
	// ErrNotFound is returned when the addressed record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidCredentials is returned for a failed login or a wrong
	// current password. It never says which part was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthenticated is returned when a session does not resolve to an admin.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrAlreadySubscribed is returned when an active subscriber signs up again.
	ErrAlreadySubscribed = errors.New("this email is already subscribed")

	// ErrAlreadyExists is returned when creating an admin whose email is taken.
	ErrAlreadyExists = errors.New("already exists")
)

// ValidationError lists invalid input fields with a message per field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add records a problem with field, keeping the first message per field.
func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = msg
	}
}

// Err returns e when any field was added and nil otherwise.
func (e *ValidationError) Err() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

func invalidField(field, msg string) error {
	v := &ValidationError{}
	v.Add(field, msg)
	return v
}

// normalizeEmail trims and lowercases an address for storage and lookup.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// invalidateViews drops cached public views after a content change.
func invalidateViews(ctx context.Context, c cache.Cache) {
	if c == nil {
		return
	}
	if err := c.Clear(ctx); err != nil {
		slog.Warn("failed to invalidate public views", "error", err)
	}
}
