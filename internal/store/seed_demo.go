// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

type demoEvent struct {
	title      string
	venue      string
	address    string
	offset     time.Duration
	ticketURL  string
	isAcoustic bool
}

type demoVideo struct {
	title      string
	url        string
	id         string
	isAcoustic bool
}

// SeedDemo fills an empty database with sample shows and videos so the
// public pages have something to render during development.
func SeedDemo(ctx context.Context, db *sql.DB, now time.Time) error {
	queries := New(db)

	events, err := queries.ListEvents(ctx)
	if err != nil {
		return fmt.Errorf("listing events: %w", err)
	}
	if len(events) > 0 {
		slog.Info("content already present, skipping demo seed")
		return nil
	}

	now = now.UTC()
	for _, e := range getDemoEvents() {
		if _, err := queries.CreateEvent(ctx, CreateEventParams{
			Title:       e.title,
			Description: "Doors at 7pm. **All ages.**",
			Venue:       e.venue,
			Address:     e.address,
			EventDate:   now.Add(e.offset),
			TicketUrl:   e.ticketURL,
			IsAcoustic:  e.isAcoustic,
			CreatedAt:   now,
			UpdatedAt:   now,
		}); err != nil {
			return fmt.Errorf("creating demo event %q: %w", e.title, err)
		}
	}

	for i, v := range getDemoVideos() {
		if _, err := queries.CreateVideo(ctx, CreateVideoParams{
			Title:        v.title,
			YoutubeUrl:   v.url,
			YoutubeID:    v.id,
			IsAcoustic:   v.isAcoustic,
			DisplayOrder: int64(i),
			CreatedAt:    now,
			UpdatedAt:    now,
		}); err != nil {
			return fmt.Errorf("creating demo video %q: %w", v.title, err)
		}
	}

	slog.Info("demo content seeded")
	return nil
}

func getDemoEvents() []demoEvent {
	day := 24 * time.Hour
	return []demoEvent{
		{title: "Album Release Show", venue: "The Crocodile", address: "2505 1st Ave, Seattle, WA", offset: 14 * day, ticketURL: "https://tickets.example.com/release"},
		{title: "Unplugged Evening", venue: "Sunset Tavern", address: "5433 Ballard Ave NW, Seattle, WA", offset: 30 * day, isAcoustic: true},
		{title: "Summer Festival", venue: "Gas Works Park", offset: 60 * day},
		{title: "Winter Warmup", venue: "Neumos", address: "925 E Pike St, Seattle, WA", offset: -45 * day},
	}
}

func getDemoVideos() []demoVideo {
	return []demoVideo{
		{title: "Live at the Crocodile", url: "https://www.youtube.com/watch?v=dQw4w9WgXcQ", id: "dQw4w9WgXcQ"},
		{title: "Back Porch Session", url: "https://youtu.be/9bZkp7q19f0", id: "9bZkp7q19f0", isAcoustic: true},
	}
}
