// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"database/sql"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"photo.jpg", "photo.jpg", false},
		{"../../etc/passwd", "passwd", false},
		{`C:\Users\band\stage.png`, "stage.png", false},
		{"..", "", true},
		{"", "", true},
		{"/", "", true},
	}

	for _, tt := range tests {
		got, err := SanitizeFilename(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("SanitizeFilename(%q) expected error, got %q", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("SanitizeFilename(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStorageName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Live Show.JPG", "live-show.jpg"},
		{"Ärzte Live!.jpg", "arzte-live.jpg"},
		{"Москва.png", "moskva.png"},
		{"../../secret.png", "secret.png"},
		{"!!!.webp", "photo.webp"},
		{"stage__left--2.jpeg", "stage__left-2.jpeg"},
	}

	for _, tt := range tests {
		got, err := StorageName(tt.in)
		if err != nil {
			t.Errorf("StorageName(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("StorageName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStorageName_Truncates(t *testing.T) {
	got, err := StorageName(strings.Repeat("a", 300) + ".jpg")
	if err != nil {
		t.Fatalf("StorageName error: %v", err)
	}
	if len(got) != maxStemLength+len(".jpg") {
		t.Errorf("len = %d, want %d", len(got), maxStemLength+4)
	}
}

func TestSafeJoinPath(t *testing.T) {
	base := t.TempDir()

	got, err := SafeJoinPath(base, "photos", "a.jpg")
	if err != nil {
		t.Fatalf("SafeJoinPath error: %v", err)
	}
	if got != filepath.Join(base, "photos", "a.jpg") {
		t.Errorf("SafeJoinPath = %q", got)
	}

	if _, err := SafeJoinPath(base, "..", "escape.jpg"); err == nil {
		t.Error("expected traversal error")
	}
	if _, err := SafeJoinPath(base, "photos/../../escape.jpg"); err == nil {
		t.Error("expected traversal error for embedded dots")
	}
}

func TestValidateHTTPURL(t *testing.T) {
	valid := []string{"https://tickets.example.com/show/1", "http://example.com"}
	invalid := []string{"ftp://example.com", "javascript:alert(1)", "example.com", "https://", strings.Repeat("x", MaxURLLength+1)}

	for _, u := range valid {
		if err := ValidateHTTPURL(u); err != nil {
			t.Errorf("ValidateHTTPURL(%q) unexpected error: %v", u, err)
		}
	}
	for _, u := range invalid {
		if err := ValidateHTTPURL(u); err == nil {
			t.Errorf("ValidateHTTPURL(%q) expected error", u)
		}
	}
}

func TestNullHelpers(t *testing.T) {
	if NullTimeFromPtr(nil).Valid {
		t.Error("nil time should be NULL")
	}
	local := time.Date(2026, 5, 1, 20, 0, 0, 0, time.FixedZone("X", 3600))
	nt := NullTimeFromPtr(&local)
	if !nt.Valid || nt.Time.Location() != time.UTC || !nt.Time.Equal(local) {
		t.Errorf("NullTimeFromPtr = %+v", nt)
	}
	if TimePtr(sql.NullTime{}) != nil {
		t.Error("TimePtr of NULL should be nil")
	}

	if NullStringFromValue("").Valid {
		t.Error("empty string should be NULL")
	}
	if p := StringPtr(sql.NullString{String: "x", Valid: true}); p == nil || *p != "x" {
		t.Error("StringPtr lost value")
	}

	yes := true
	if nb := NullBoolFromPtr(&yes); !nb.Valid || !nb.Bool {
		t.Error("NullBoolFromPtr lost value")
	}
	if NullBoolFromPtr(nil).Valid {
		t.Error("nil bool should be NULL")
	}
}

func TestTruncateBytes(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly", 7, "exactly"},
		{"abcdef", 3, "abc"},
		{"aéé", 4, "aé"},
		{"aéé", 3, "aé"},
		{"日本語", 5, "日"},
		{"é", 1, ""},
	}
	for _, tt := range tests {
		got := TruncateBytes(tt.in, tt.n)
		if got != tt.want {
			t.Errorf("TruncateBytes(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
