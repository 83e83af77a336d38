// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util provides small helpers shared by the service and handler layers.
package util

import (
	"database/sql"
	"time"
)

// NullTimeFromPtr converts an optional time into sql.NullTime, normalized to UTC.
func NullTimeFromPtr(ptr *time.Time) sql.NullTime {
	if ptr != nil {
		return sql.NullTime{Time: ptr.UTC(), Valid: true}
	}
	return sql.NullTime{}
}

// TimePtr returns the time held by nt, or nil when it is NULL.
func TimePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}

// NullStringFromValue creates a sql.NullString that is NULL for the empty string.
func NullStringFromValue(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// StringPtr returns the string held by ns, or nil when it is NULL.
func StringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

// NullBoolFromPtr converts an optional filter flag into sql.NullBool.
func NullBoolFromPtr(ptr *bool) sql.NullBool {
	if ptr != nil {
		return sql.NullBool{Bool: *ptr, Valid: true}
	}
	return sql.NullBool{}
}
