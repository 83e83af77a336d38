// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/olegiv/bandsite/internal/auth"
	"github.com/olegiv/bandsite/internal/service"
	"github.com/olegiv/bandsite/internal/session"
)

// LoginRequest is the body of POST /api/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the signed-in admin and the session token that
// non-browser clients send as a bearer credential.
type LoginResponse struct {
	Admin     auth.Identity `json:"admin"`
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
}

// Login handles POST /api/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		WriteValidationError(w, map[string]string{"credentials": "Email and password are required"})
		return
	}

	if h.LoginProtection != nil {
		if locked, remaining := h.LoginProtection.IsAccountLocked(email); locked {
			writeLocked(w, remaining)
			return
		}
	}

	id, err := h.Auth.Authenticate(r.Context(), email, req.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		if h.LoginProtection != nil {
			if locked, d := h.LoginProtection.RecordFailedAttempt(email); locked {
				writeLocked(w, d)
				return
			}
			slog.Warn("failed login attempt", "category", "auth", "email", email, "ip", r.RemoteAddr,
				"remaining_attempts", h.LoginProtection.RemainingAttempts(email))
		} else {
			slog.Warn("failed login attempt", "category", "auth", "email", email, "ip", r.RemoteAddr)
		}
		WriteUnauthorized(w, "Invalid email or password")
		return
	}
	if err != nil {
		writeServiceError(w, r, err, "sign in")
		return
	}

	if h.LoginProtection != nil {
		h.LoginProtection.RecordSuccessfulLogin(email)
	}

	token, err := session.Login(r.Context(), h.Sessions, id.ID)
	if err != nil {
		writeServiceError(w, r, err, "create session")
		return
	}

	slog.Info("admin signed in", "category", "auth", "admin_id", id.ID, "email", id.Email)
	WriteSuccess(w, LoginResponse{
		Admin:     id,
		Token:     token,
		ExpiresAt: time.Now().Add(h.Sessions.Lifetime).UTC(),
	}, nil)
}

func writeLocked(w http.ResponseWriter, remaining time.Duration) {
	minutes := int(math.Ceil(remaining.Minutes()))
	w.Header().Set("Retry-After", fmt.Sprintf("%d", int(math.Ceil(remaining.Seconds()))))
	WriteError(w, http.StatusTooManyRequests, "account_locked",
		fmt.Sprintf("Too many failed attempts. Try again in %d minute(s).", minutes), nil)
}

// Logout handles POST /api/logout. It succeeds without a session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	adminID := session.AdminID(r.Context(), h.Sessions)
	if err := session.Logout(r.Context(), h.Sessions); err != nil {
		writeServiceError(w, r, err, "sign out")
		return
	}
	if adminID != 0 {
		slog.Info("admin signed out", "category", "auth", "admin_id", adminID)
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /api/admin/me.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		WriteUnauthorized(w, "Authentication required")
		return
	}
	WriteSuccess(w, id, nil)
}

// ChangePasswordRequest is the body of POST /api/admin/change-password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangePassword handles POST /api/admin/change-password.
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		WriteUnauthorized(w, "Authentication required")
		return
	}

	var req ChangePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	err := h.Auth.ChangePassword(r.Context(), id, req.CurrentPassword, req.NewPassword)
	if errors.Is(err, service.ErrInvalidCredentials) {
		WriteError(w, http.StatusBadRequest, "invalid_credentials", "Current password is incorrect",
			map[string]string{"current_password": "Current password is incorrect"})
		return
	}
	if err != nil {
		writeServiceError(w, r, err, "change password")
		return
	}

	WriteSuccess(w, map[string]bool{"success": true}, nil)
}

// SetupRequest is the body of POST /api/setup.
type SetupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	SetupKey string `json:"setup_key"`
}

// Setup handles POST /api/setup, the one-time admin bootstrap. It is only
// mounted when a setup key is configured.
func (h *Handler) Setup(w http.ResponseWriter, r *http.Request) {
	var req SetupRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if h.SetupKey == "" || subtle.ConstantTimeCompare([]byte(req.SetupKey), []byte(h.SetupKey)) != 1 {
		slog.Warn("setup attempted with invalid key", "category", "auth", "ip", r.RemoteAddr)
		WriteForbidden(w, "Invalid setup key")
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		WriteValidationError(w, map[string]string{"name": "Name is required"})
		return
	}

	id, err := h.Auth.CreateAdmin(r.Context(), req.Email, strings.TrimSpace(req.Name), req.Password)
	if errors.Is(err, service.ErrAlreadyExists) {
		WriteError(w, http.StatusConflict, "already_exists", "An admin with this email already exists", nil)
		return
	}
	if err != nil {
		writeServiceError(w, r, err, "create admin user")
		return
	}

	slog.Info("admin user created via setup", "category", "auth", "admin_id", id.ID, "email", id.Email)
	WriteCreated(w, id)
}
