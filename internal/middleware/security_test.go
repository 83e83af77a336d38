// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func serveWithHeaders(cfg SecurityHeadersConfig, path string) http.Header {
	h := SecurityHeaders(cfg)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec.Header()
}

func TestSecurityHeaders_APIResponse(t *testing.T) {
	hdr := serveWithHeaders(DefaultSecurityHeadersConfig(false), "/api/events/upcoming")

	want := map[string]string{
		"X-Frame-Options":        "DENY",
		"X-Content-Type-Options": "nosniff",
		"Referrer-Policy":        "strict-origin-when-cross-origin",
	}
	for name, value := range want {
		if got := hdr.Get(name); got != value {
			t.Errorf("%s = %q, want %q", name, got, value)
		}
	}
	for _, name := range []string{"Content-Security-Policy", "Strict-Transport-Security", "Permissions-Policy"} {
		if hdr.Get(name) == "" {
			t.Errorf("missing %s", name)
		}
	}
}

func TestSecurityHeaders_NoHSTSInDevelopment(t *testing.T) {
	hdr := serveWithHeaders(DefaultSecurityHeadersConfig(true), "/api/admin/me")
	if got := hdr.Get("Strict-Transport-Security"); got != "" {
		t.Errorf("Strict-Transport-Security = %q, want none in development", got)
	}
	if hdr.Get("Content-Security-Policy") == "" {
		t.Error("CSP should still be sent in development")
	}
}

func TestSecurityHeaders_ExcludedPrefix(t *testing.T) {
	cfg := DefaultSecurityHeadersConfig(false)
	cfg.ExcludePaths = []string{"/uploads/"}

	for path, wantCSP := range map[string]bool{
		"/api/photos":                    true,
		"/uploads/photos/1-a.jpg":        false,
		"/uploads/photos/thumbs/1-a.jpg": false,
	} {
		got := serveWithHeaders(cfg, path).Get("Content-Security-Policy") != ""
		if got != wantCSP {
			t.Errorf("%s: CSP present = %v, want %v", path, got, wantCSP)
		}
	}
}

func TestSecurityHeaders_HSTSFlags(t *testing.T) {
	hdr := serveWithHeaders(SecurityHeadersConfig{
		HSTSMaxAge:            63072000,
		HSTSIncludeSubDomains: true,
		HSTSPreload:           true,
	}, "/")

	if got, want := hdr.Get("Strict-Transport-Security"), "max-age=63072000; includeSubDomains; preload"; got != want {
		t.Errorf("Strict-Transport-Security = %q, want %q", got, want)
	}
}

func TestBuildCSP(t *testing.T) {
	csp := buildCSP(map[string]string{
		"report-uri":  "/csp",
		"img-src":     "'self' data:",
		"default-src": "'none'",
	})

	want := "default-src 'none'; img-src 'self' data:; report-uri /csp"
	if csp != want {
		t.Errorf("buildCSP() = %q, want %q", csp, want)
	}
}

func TestBuildPermissionsPolicy_Sorted(t *testing.T) {
	got := buildPermissionsPolicy(map[string]string{"usb": "()", "camera": "()"})
	if got != "camera=(), usb=()" {
		t.Errorf("buildPermissionsPolicy() = %q", got)
	}
}

func TestDefaultSecurityHeaders_APIPolicy(t *testing.T) {
	cfg := DefaultSecurityHeadersConfig(false)
	for _, want := range []string{"default-src 'none'", "frame-ancestors 'none'", "img-src 'self' data:"} {
		if !strings.Contains(cfg.ContentSecurityPolicy, want) {
			t.Errorf("CSP %q missing %q", cfg.ContentSecurityPolicy, want)
		}
	}
	if strings.Contains(cfg.ContentSecurityPolicy, "unsafe-inline") {
		t.Error("API CSP must not allow inline scripts")
	}
}
