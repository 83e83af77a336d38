// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestTimeout_PassesThroughFastHandlers(t *testing.T) {
	h := Timeout(time.Second)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Location", "/api/admin/events/7")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{"id":7}}`))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/admin/events", nil))

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", rec.Code)
	}
	if rec.Header().Get("Location") != "/api/admin/events/7" {
		t.Errorf("Location = %q", rec.Header().Get("Location"))
	}
	if rec.Body.String() != `{"data":{"id":7}}` {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestTimeout_SlowHandlerGetsJSON503(t *testing.T) {
	h := Timeout(20 * time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
			w.WriteHeader(http.StatusOK)
		case <-r.Context().Done():
		}
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	var body APIError
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body %q: %v", rec.Body.String(), err)
	}
	if body.Error.Code != "timeout" {
		t.Errorf("code = %q, want timeout", body.Error.Code)
	}
}

func TestTimeoutWriter_FirstStatusWins(t *testing.T) {
	rec := httptest.NewRecorder()
	tw := &timeoutWriter{ResponseWriter: rec}

	tw.WriteHeader(http.StatusAccepted)
	tw.WriteHeader(http.StatusInternalServerError)
	_, _ = tw.Write([]byte("ok"))

	if rec.Code != http.StatusAccepted {
		t.Errorf("status = %d, want 202", rec.Code)
	}
}

func TestTimeoutWriter_ImplicitOK(t *testing.T) {
	rec := httptest.NewRecorder()
	tw := &timeoutWriter{ResponseWriter: rec}

	if n, err := tw.Write([]byte("hello")); err != nil || n != 5 {
		t.Fatalf("Write() = %d, %v", n, err)
	}
	if !tw.wroteHeader || rec.Code != http.StatusOK {
		t.Errorf("wroteHeader = %v, status = %d; want true, 200", tw.wroteHeader, rec.Code)
	}
}

func TestTimeoutWriter_DiscardsLateWrites(t *testing.T) {
	rec := httptest.NewRecorder()
	tw := &timeoutWriter{ResponseWriter: rec, timedOut: true}

	tw.WriteHeader(http.StatusCreated)
	if _, err := tw.Write([]byte("late")); !errors.Is(err, http.ErrHandlerTimeout) {
		t.Errorf("Write() error = %v, want ErrHandlerTimeout", err)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("body = %q, want empty", rec.Body.String())
	}
}
