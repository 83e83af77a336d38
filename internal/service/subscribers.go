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

	"github.com/google/uuid"

	"github.com/olegiv/bandsite/internal/mail"
	"github.com/olegiv/bandsite/internal/markup"
	"github.com/olegiv/bandsite/internal/store"
	"github.com/olegiv/bandsite/internal/util"
)

// Subscriber field limits.
const (
	MaxEmailLength = 254
	MaxNameLength  = 100
)

const welcomeMailTimeout = 10 * time.Second

// SubscribeResult reports the outcome of a subscription request.
type SubscribeResult struct {
	Subscriber  store.Subscriber
	Reactivated bool
}

// Message is the confirmation shown to the visitor.
func (r SubscribeResult) Message() string {
	if r.Reactivated {
		return "Subscription reactivated!"
	}
	return "Successfully subscribed!"
}

// SubscriberService manages the mailing list.
type SubscriberService struct {
	queries  *store.Queries
	mailer   mail.Sender
	siteName string
	baseURL  string
	now      func() time.Time
	newToken func() string
}

// NewSubscriberService creates a SubscriberService. Welcome emails go
// through mailer and link back to baseURL; a nil mailer disables them.
func NewSubscriberService(db *sql.DB, mailer mail.Sender, siteName, baseURL string) *SubscriberService {
	return &SubscriberService{
		queries:  store.New(db),
		mailer:   mailer,
		siteName: siteName,
		baseURL:  strings.TrimRight(baseURL, "/"),
		now:      time.Now,
		newToken: uuid.NewString,
	}
}

// Subscribe adds email to the mailing list. An inactive subscriber is
// reactivated in place; an active one yields ErrAlreadySubscribed.
func (s *SubscriberService) Subscribe(ctx context.Context, email, name string) (SubscribeResult, error) {
	email = normalizeEmail(email)
	name = strings.TrimSpace(markup.StripTags(name))

	v := &ValidationError{}
	if email == "" || !strings.Contains(email, "@") {
		v.Add("email", "Valid email is required")
	} else if len(email) > MaxEmailLength {
		v.Add("email", fmt.Sprintf("Email must be at most %d characters", MaxEmailLength))
	}
	if len(name) > MaxNameLength {
		v.Add("name", fmt.Sprintf("Name must be at most %d characters", MaxNameLength))
	}
	if err := v.Err(); err != nil {
		return SubscribeResult{}, err
	}

	now := s.now().UTC()
	existing, err := s.queries.GetSubscriberByEmail(ctx, email)
	switch {
	case err == nil && existing.IsActive:
		return SubscribeResult{}, ErrAlreadySubscribed

	case err == nil:
		sub, err := s.queries.ReactivateSubscriber(ctx, store.ReactivateSubscriberParams{
			Name:      util.NullStringFromValue(name),
			UpdatedAt: now,
			ID:        existing.ID,
		})
		if err != nil {
			return SubscribeResult{}, fmt.Errorf("reactivating subscriber: %w", err)
		}
		slog.Info("subscriber reactivated", "subscriber_id", sub.ID)
		s.sendWelcome(ctx, sub)
		return SubscribeResult{Subscriber: sub, Reactivated: true}, nil

	case !errors.Is(err, sql.ErrNoRows):
		return SubscribeResult{}, fmt.Errorf("loading subscriber: %w", err)
	}

	sub, err := s.queries.CreateSubscriber(ctx, store.CreateSubscriberParams{
		Email:            email,
		Name:             util.NullStringFromValue(name),
		UnsubscribeToken: s.newToken(),
		SubscribedAt:     now,
		UpdatedAt:        now,
	})
	if store.IsUniqueViolation(err) {
		// Lost a race with a concurrent signup for the same address.
		return SubscribeResult{}, ErrAlreadySubscribed
	}
	if err != nil {
		return SubscribeResult{}, fmt.Errorf("creating subscriber: %w", err)
	}

	slog.Info("subscriber added", "subscriber_id", sub.ID)
	s.sendWelcome(ctx, sub)
	return SubscribeResult{Subscriber: sub}, nil
}

// Lookup returns the subscriber holding an unsubscribe token.
func (s *SubscriberService) Lookup(ctx context.Context, token string) (store.Subscriber, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return store.Subscriber{}, ErrNotFound
	}

	sub, err := s.queries.GetSubscriberByToken(ctx, token)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Subscriber{}, ErrNotFound
	}
	if err != nil {
		return store.Subscriber{}, fmt.Errorf("loading subscriber: %w", err)
	}
	return sub, nil
}

// Unsubscribe deactivates the subscriber holding token. Repeating it is harmless.
func (s *SubscriberService) Unsubscribe(ctx context.Context, token string) error {
	sub, err := s.Lookup(ctx, token)
	if err != nil {
		return err
	}
	if !sub.IsActive {
		return nil
	}

	if err := s.queries.DeactivateSubscriber(ctx, store.DeactivateSubscriberParams{
		UpdatedAt: s.now().UTC(),
		ID:        sub.ID,
	}); err != nil {
		return fmt.Errorf("deactivating subscriber: %w", err)
	}
	slog.Info("subscriber unsubscribed", "subscriber_id", sub.ID)
	return nil
}

// List returns all subscribers in insertion order.
func (s *SubscriberService) List(ctx context.Context) ([]store.Subscriber, error) {
	subs, err := s.queries.ListSubscribers(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing subscribers: %w", err)
	}
	return subs, nil
}

// Delete removes the subscriber with id.
func (s *SubscriberService) Delete(ctx context.Context, id int64) error {
	n, err := s.queries.DeleteSubscriber(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting subscriber: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// UnsubscribeURL returns the public link that deactivates sub.
func (s *SubscriberService) UnsubscribeURL(sub store.Subscriber) string {
	return s.baseURL + "/api/unsubscribe/" + sub.UnsubscribeToken
}

func (s *SubscriberService) sendWelcome(ctx context.Context, sub store.Subscriber) {
	if s.mailer == nil {
		return
	}

	msg, err := mail.Welcome(sub.Email, mail.WelcomeData{
		Site:           s.siteName,
		Name:           sub.Name.String,
		UnsubscribeURL: s.UnsubscribeURL(sub),
	})
	if err != nil {
		slog.Error("failed to build welcome email", "category", "mail", "error", err)
		return
	}

	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), welcomeMailTimeout)
	defer cancel()
	if err := s.mailer.Send(sendCtx, msg); err != nil {
		slog.Warn("failed to send welcome email", "category", "mail", "subscriber_id", sub.ID, "error", err)
	}
}
