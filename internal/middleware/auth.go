// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for authentication, request
// limits and response hardening.
package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/bandsite/internal/auth"
	"github.com/olegiv/bandsite/internal/service"
	"github.com/olegiv/bandsite/internal/session"
)

// SessionResolver turns the admin id stored in a session into an identity.
type SessionResolver interface {
	ResolveSession(ctx context.Context, adminID int64) (auth.Identity, error)
}

// RequireAdmin rejects requests without a session that resolves to an
// existing admin, and attaches the admin's identity to the request context.
func RequireAdmin(sm *scs.SessionManager, resolver SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := resolver.ResolveSession(r.Context(), session.AdminID(r.Context(), sm))
			if err != nil {
				if !errors.Is(err, service.ErrUnauthenticated) {
					slog.Error("failed to resolve session", "error", err, "path", r.URL.Path)
					WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Internal server error", nil)
					return
				}
				WriteAPIError(w, http.StatusUnauthorized, "unauthorized", "Authentication required", nil)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), id)))
		})
	}
}
