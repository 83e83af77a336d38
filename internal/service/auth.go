// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/olegiv/bandsite/internal/auth"
	"github.com/olegiv/bandsite/internal/store"
)

// MinPasswordLength is the shortest password accepted for an admin.
const MinPasswordLength = 8

// MaxPasswordLength bounds the input handed to the hash function.
const MaxPasswordLength = 256

// Authenticator verifies admin credentials and resolves session identities.
type Authenticator struct {
	queries *store.Queries
	now     func() time.Time

	// dummyHash is checked when the email is unknown so both failure
	// paths cost one hash comparison.
	dummyHash string
}

// NewAuthenticator creates an Authenticator over db.
func NewAuthenticator(db *sql.DB) *Authenticator {
	dummy, err := auth.HashPassword("not-a-real-password")
	if err != nil {
		slog.Error("failed to prepare dummy hash", "error", err)
	}
	return &Authenticator{
		queries:   store.New(db),
		now:       time.Now,
		dummyHash: dummy,
	}
}

// Authenticate checks email and password. A missing account and a wrong
// password both fail with ErrInvalidCredentials. On success the admin's
// last-login time is recorded.
func (a *Authenticator) Authenticate(ctx context.Context, email, password string) (auth.Identity, error) {
	if len(password) > MaxPasswordLength {
		return auth.Identity{}, ErrInvalidCredentials
	}

	user, err := a.queries.GetAdminUserByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, sql.ErrNoRows) {
		_, _ = auth.CheckPassword(password, a.dummyHash)
		return auth.Identity{}, ErrInvalidCredentials
	}
	if err != nil {
		return auth.Identity{}, fmt.Errorf("loading admin: %w", err)
	}

	ok, err := auth.CheckPassword(password, user.PasswordHash)
	if err != nil {
		slog.Error("stored password hash is unreadable", "admin_id", user.ID, "error", err)
		return auth.Identity{}, ErrInvalidCredentials
	}
	if !ok {
		return auth.Identity{}, ErrInvalidCredentials
	}

	now := a.now().UTC()
	if err := a.queries.UpdateAdminLastLogin(ctx, store.UpdateAdminLastLoginParams{
		LastLoginAt: sql.NullTime{Time: now, Valid: true},
		UpdatedAt:   now,
		ID:          user.ID,
	}); err != nil {
		return auth.Identity{}, fmt.Errorf("recording last login: %w", err)
	}

	if auth.NeedsRehash(user.PasswordHash) {
		a.upgradeHash(ctx, user.ID, password)
	}

	return identityOf(user), nil
}

// ResolveSession returns the identity for the admin id held by a session.
// A zero id or an admin that no longer exists yields ErrUnauthenticated.
func (a *Authenticator) ResolveSession(ctx context.Context, adminID int64) (auth.Identity, error) {
	if adminID <= 0 {
		return auth.Identity{}, ErrUnauthenticated
	}

	user, err := a.queries.GetAdminUserByID(ctx, adminID)
	if errors.Is(err, sql.ErrNoRows) {
		return auth.Identity{}, ErrUnauthenticated
	}
	if err != nil {
		return auth.Identity{}, fmt.Errorf("loading admin: %w", err)
	}
	return identityOf(user), nil
}

// ChangePassword replaces the admin's password after verifying the current one.
func (a *Authenticator) ChangePassword(ctx context.Context, id auth.Identity, current, next string) error {
	v := &ValidationError{}
	if current == "" {
		v.Add("current_password", "Current password is required")
	}
	validateNewPassword(v, "new_password", next)
	if err := v.Err(); err != nil {
		return err
	}

	user, err := a.queries.GetAdminUserByID(ctx, id.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrUnauthenticated
	}
	if err != nil {
		return fmt.Errorf("loading admin: %w", err)
	}

	ok, err := auth.CheckPassword(current, user.PasswordHash)
	if err != nil || !ok {
		return ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(next)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	if err := a.queries.UpdateAdminPassword(ctx, store.UpdateAdminPasswordParams{
		PasswordHash: hash,
		UpdatedAt:    a.now().UTC(),
		ID:           user.ID,
	}); err != nil {
		return fmt.Errorf("updating password: %w", err)
	}

	slog.Info("admin password changed", "admin_id", user.ID)
	return nil
}

// CreateAdmin adds an admin account. A taken email yields ErrAlreadyExists.
func (a *Authenticator) CreateAdmin(ctx context.Context, email, name, password string) (auth.Identity, error) {
	email = normalizeEmail(email)
	name = strings.TrimSpace(name)

	v := &ValidationError{}
	if !strings.Contains(email, "@") {
		v.Add("email", "Valid email is required")
	}
	validateNewPassword(v, "password", password)
	if err := v.Err(); err != nil {
		return auth.Identity{}, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return auth.Identity{}, fmt.Errorf("hashing password: %w", err)
	}

	now := a.now().UTC()
	user, err := a.queries.CreateAdminUser(ctx, store.CreateAdminUserParams{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if store.IsUniqueViolation(err) {
		return auth.Identity{}, ErrAlreadyExists
	}
	if err != nil {
		return auth.Identity{}, fmt.Errorf("creating admin: %w", err)
	}

	slog.Info("admin created", "admin_id", user.ID, "email", user.Email)
	return identityOf(user), nil
}

func (a *Authenticator) upgradeHash(ctx context.Context, id int64, password string) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		slog.Warn("failed to rehash password", "admin_id", id, "error", err)
		return
	}
	if err := a.queries.UpdateAdminPassword(ctx, store.UpdateAdminPasswordParams{
		PasswordHash: hash,
		UpdatedAt:    a.now().UTC(),
		ID:           id,
	}); err != nil {
		slog.Warn("failed to store upgraded password hash", "admin_id", id, "error", err)
	}
}

func validateNewPassword(v *ValidationError, field, password string) {
	switch {
	case len(password) < MinPasswordLength:
		v.Add(field, fmt.Sprintf("Password must be at least %d characters", MinPasswordLength))
	case len(password) > MaxPasswordLength:
		v.Add(field, fmt.Sprintf("Password must be at most %d characters", MaxPasswordLength))
	}
}

func identityOf(u store.AdminUser) auth.Identity {
	return auth.Identity{ID: u.ID, Email: u.Email, Name: u.Name}
}
