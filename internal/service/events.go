// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/olegiv/bandsite/internal/cache"
	"github.com/olegiv/bandsite/internal/store"
	"github.com/olegiv/bandsite/internal/util"
)

// Field length limits for events.
const (
	MaxTitleLength       = 200
	MaxVenueLength       = 200
	MaxAddressLength     = 500
	MaxDescriptionLength = 10000
)

// EventInput carries the editable fields of an event.
type EventInput struct {
	Title       string
	Description string
	Venue       string
	Address     string
	EventDate   *time.Time
	EndDate     *time.Time
	TicketURL   string
	IsAcoustic  bool
}

// EventService manages show listings.
type EventService struct {
	queries *store.Queries
	cache   cache.Cache
	now     func() time.Time
}

// NewEventService creates an EventService. c may be nil.
func NewEventService(db *sql.DB, c cache.Cache) *EventService {
	return &EventService{queries: store.New(db), cache: c, now: time.Now}
}

// List returns all events ordered by event date.
func (s *EventService) List(ctx context.Context) ([]store.Event, error) {
	events, err := s.queries.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	return events, nil
}

// Get returns the event with id.
func (s *EventService) Get(ctx context.Context, id int64) (store.Event, error) {
	e, err := s.queries.GetEventByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Event{}, ErrNotFound
	}
	if err != nil {
		return store.Event{}, fmt.Errorf("loading event: %w", err)
	}
	return e, nil
}

// Create validates in and stores a new event.
func (s *EventService) Create(ctx context.Context, in EventInput) (store.Event, error) {
	in = in.normalized()
	if err := in.validate(); err != nil {
		return store.Event{}, err
	}

	now := s.now().UTC()
	e, err := s.queries.CreateEvent(ctx, store.CreateEventParams{
		Title:       in.Title,
		Description: in.Description,
		Venue:       in.Venue,
		Address:     in.Address,
		EventDate:   in.EventDate.UTC(),
		EndDate:     util.NullTimeFromPtr(in.EndDate),
		TicketUrl:   in.TicketURL,
		IsAcoustic:  in.IsAcoustic,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return store.Event{}, fmt.Errorf("creating event: %w", err)
	}

	invalidateViews(ctx, s.cache)
	return e, nil
}

// Update replaces the editable fields of the event with id.
func (s *EventService) Update(ctx context.Context, id int64, in EventInput) (store.Event, error) {
	in = in.normalized()
	if err := in.validate(); err != nil {
		return store.Event{}, err
	}

	e, err := s.queries.UpdateEvent(ctx, store.UpdateEventParams{
		Title:       in.Title,
		Description: in.Description,
		Venue:       in.Venue,
		Address:     in.Address,
		EventDate:   in.EventDate.UTC(),
		EndDate:     util.NullTimeFromPtr(in.EndDate),
		TicketUrl:   in.TicketURL,
		IsAcoustic:  in.IsAcoustic,
		UpdatedAt:   s.now().UTC(),
		ID:          id,
	})
	if errors.Is(err, sql.ErrNoRows) {
		return store.Event{}, ErrNotFound
	}
	if err != nil {
		return store.Event{}, fmt.Errorf("updating event: %w", err)
	}

	invalidateViews(ctx, s.cache)
	return e, nil
}

// Delete removes the event with id.
func (s *EventService) Delete(ctx context.Context, id int64) error {
	n, err := s.queries.DeleteEvent(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	invalidateViews(ctx, s.cache)
	return nil
}

func (in EventInput) normalized() EventInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Venue = strings.TrimSpace(in.Venue)
	in.Address = strings.TrimSpace(in.Address)
	in.Description = strings.TrimSpace(in.Description)
	in.TicketURL = strings.TrimSpace(in.TicketURL)
	return in
}

func (in EventInput) validate() error {
	v := &ValidationError{}

	if in.Title == "" {
		v.Add("title", "Title is required")
	} else if len(in.Title) > MaxTitleLength {
		v.Add("title", fmt.Sprintf("Title must be at most %d characters", MaxTitleLength))
	}

	if in.Venue == "" {
		v.Add("venue", "Venue is required")
	} else if len(in.Venue) > MaxVenueLength {
		v.Add("venue", fmt.Sprintf("Venue must be at most %d characters", MaxVenueLength))
	}

	if len(in.Address) > MaxAddressLength {
		v.Add("address", fmt.Sprintf("Address must be at most %d characters", MaxAddressLength))
	}
	if len(in.Description) > MaxDescriptionLength {
		v.Add("description", fmt.Sprintf("Description must be at most %d characters", MaxDescriptionLength))
	}

	if in.EventDate == nil || in.EventDate.IsZero() {
		v.Add("event_date", "Event date is required")
	} else if in.EndDate != nil && in.EndDate.Before(*in.EventDate) {
		v.Add("end_date", "End date must not be before the event date")
	}

	if in.TicketURL != "" {
		if err := util.ValidateHTTPURL(in.TicketURL); err != nil {
			v.Add("ticket_url", "Ticket URL must be a valid http or https URL")
		}
	}

	return v.Err()
}
