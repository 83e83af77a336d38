// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session configures admin sessions backed by the SQLite sessions table.
package session

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
)

// KeyAdminID is the session key holding the signed-in admin's id.
const KeyAdminID = "admin_id"

// Lifetime is how long an admin session stays valid.
const Lifetime = 24 * time.Hour

// New creates a session manager using the sessions table. The returned
// function stops the expired-session cleanup goroutine.
func New(db *sql.DB, isDev bool) (*scs.SessionManager, func()) {
	store := sqlite3store.NewWithCleanupInterval(db, 30*time.Minute)

	sm := scs.New()
	sm.Store = store
	sm.Lifetime = Lifetime
	sm.IdleTimeout = 4 * time.Hour
	sm.Cookie.Path = "/"
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = !isDev
	if !isDev {
		sm.Cookie.Name = "__Host-session"
	}

	return sm, store.StopCleanup
}

// Login binds adminID to a fresh session token and returns the token so
// non-browser clients can present it as a bearer credential.
func Login(ctx context.Context, sm *scs.SessionManager, adminID int64) (string, error) {
	if err := sm.RenewToken(ctx); err != nil {
		return "", err
	}
	sm.Put(ctx, KeyAdminID, adminID)
	token, _, err := sm.Commit(ctx)
	if err != nil {
		return "", err
	}
	return token, nil
}

// Logout destroys the session.
func Logout(ctx context.Context, sm *scs.SessionManager) error {
	return sm.Destroy(ctx)
}

// AdminID returns the admin id stored in the session, or 0 when absent.
func AdminID(ctx context.Context, sm *scs.SessionManager) int64 {
	return sm.GetInt64(ctx, KeyAdminID)
}

// BearerToken lets API clients send the session token in an
// Authorization header. When the request has no session cookie, the
// bearer token is presented to scs as that cookie. Must run before
// LoadAndSave.
func BearerToken(sm *scs.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, err := r.Cookie(sm.Cookie.Name); err == nil {
				next.ServeHTTP(w, r)
				return
			}

			authz := r.Header.Get("Authorization")
			scheme, token, ok := strings.Cut(authz, " ")
			if ok && strings.EqualFold(scheme, "Bearer") && strings.TrimSpace(token) != "" {
				r.AddCookie(&http.Cookie{Name: sm.Cookie.Name, Value: strings.TrimSpace(token)})
			}
			next.ServeHTTP(w, r)
		})
	}
}
