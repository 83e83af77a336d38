// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"
)

var testCSRFKey = []byte("12345678901234567890123456789012")

func TestDefaultCSRFConfig_Development(t *testing.T) {
	cfg := DefaultCSRFConfig(testCSRFKey, true, nil)

	if len(cfg.AuthKey) != 32 {
		t.Errorf("expected 32-byte AuthKey, got %d bytes", len(cfg.AuthKey))
	}
	for _, want := range []string{"localhost:8080", "127.0.0.1:8080"} {
		if !slices.Contains(cfg.TrustedOrigins, want) {
			t.Errorf("TrustedOrigins = %v, missing %q", cfg.TrustedOrigins, want)
		}
	}
}

func TestDefaultCSRFConfig_Production(t *testing.T) {
	cfg := DefaultCSRFConfig(testCSRFKey, false, nil)
	if len(cfg.TrustedOrigins) != 0 {
		t.Errorf("expected no TrustedOrigins in production, got %v", cfg.TrustedOrigins)
	}
}

// The csrf library expects host[:port] values; full URLs cause
// "origin invalid" failures.
func TestDefaultCSRFConfig_OriginsReducedToHost(t *testing.T) {
	cfg := DefaultCSRFConfig(testCSRFKey, false, []string{
		"https://band.example",
		"http://localhost:5173",
		"admin.band.example",
		"*",
		" ",
	})

	want := []string{"band.example", "localhost:5173", "admin.band.example"}
	if !slices.Equal(cfg.TrustedOrigins, want) {
		t.Errorf("TrustedOrigins = %v, want %v", cfg.TrustedOrigins, want)
	}
	for _, origin := range cfg.TrustedOrigins {
		if strings.Contains(origin, "://") {
			t.Errorf("TrustedOrigin %q should be host-only", origin)
		}
	}
}

func crossSitePost(path string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, nil)
	req.Header.Set("Origin", "https://evil.example")
	req.Header.Set("Sec-Fetch-Site", "cross-site")
	return req
}

func TestCSRF_RejectsCrossSitePost(t *testing.T) {
	called := false
	h := CSRF(DefaultCSRFConfig(testCSRFKey, false, nil))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, crossSitePost("/api/admin/events"))

	if called {
		t.Error("handler must not run for a cross-site POST")
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}

	var body APIError
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body.Error.Code != "forbidden" {
		t.Errorf("error code = %q, want forbidden", body.Error.Code)
	}
}

func TestCSRF_AllowsSafeMethods(t *testing.T) {
	h := CSRF(DefaultCSRFConfig(testCSRFKey, false, nil))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
	req.Header.Set("Sec-Fetch-Site", "cross-site")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
}

func TestCSRF_CustomErrorHandler(t *testing.T) {
	cfg := DefaultCSRFConfig(testCSRFKey, false, nil)
	cfg.ErrorHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	h := CSRF(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, crossSitePost("/api/admin/events"))

	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, want custom handler's 418", rec.Code)
	}
}

func TestSkipCSRFForBearer(t *testing.T) {
	protected := SkipCSRFForBearer(CSRF(DefaultCSRFConfig(testCSRFKey, false, nil))(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}),
	))

	tests := []struct {
		name   string
		authz  string
		status int
	}{
		{"bearer token", "Bearer abc123", http.StatusNoContent},
		{"lowercase scheme", "bearer abc123", http.StatusNoContent},
		{"empty token", "Bearer ", http.StatusForbidden},
		{"basic auth", "Basic dXNlcjpwYXNz", http.StatusForbidden},
		{"no header", "", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := crossSitePost("/api/admin/events")
			if tt.authz != "" {
				req.Header.Set("Authorization", tt.authz)
			}
			rec := httptest.NewRecorder()
			protected.ServeHTTP(rec, req)

			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
		})
	}
}
