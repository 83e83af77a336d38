// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/olegiv/bandsite/internal/cache"
	"github.com/olegiv/bandsite/internal/markup"
	"github.com/olegiv/bandsite/internal/store"
	"github.com/olegiv/bandsite/internal/util"
	"github.com/olegiv/bandsite/internal/youtube"
)

// Default and maximum sizes of the public listings.
const (
	DefaultUpcomingLimit = 10
	DefaultPastLimit     = 50
	DefaultVideoLimit    = 20
	DefaultPhotoLimit    = 20
	MaxViewLimit         = 100
)

// EventView is the JSON form of an event.
type EventView struct {
	ID              int64      `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	DescriptionHTML string     `json:"description_html"`
	Venue           string     `json:"venue"`
	Address         string     `json:"address"`
	EventDate       time.Time  `json:"event_date"`
	EndDate         *time.Time `json:"end_date"`
	TicketURL       string     `json:"ticket_url"`
	IsAcoustic      bool       `json:"is_acoustic"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// NewEventView converts a stored event.
func NewEventView(e store.Event) EventView {
	html, err := markup.RenderMarkdown(e.Description)
	if err != nil {
		slog.Warn("failed to render event description", "event_id", e.ID, "error", err)
	}
	return EventView{
		ID:              e.ID,
		Title:           e.Title,
		Description:     e.Description,
		DescriptionHTML: html,
		Venue:           e.Venue,
		Address:         e.Address,
		EventDate:       e.EventDate,
		EndDate:         util.TimePtr(e.EndDate),
		TicketURL:       e.TicketUrl,
		IsAcoustic:      e.IsAcoustic,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

// VideoView is the JSON form of a video.
type VideoView struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	YoutubeURL   string    `json:"youtube_url"`
	YoutubeID    string    `json:"youtube_id"`
	EmbedURL     string    `json:"embed_url"`
	ThumbnailURL string    `json:"thumbnail_url"`
	IsAcoustic   bool      `json:"is_acoustic"`
	DisplayOrder int64     `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewVideoView converts a stored video.
func NewVideoView(v store.Video) VideoView {
	return VideoView{
		ID:           v.ID,
		Title:        v.Title,
		Description:  v.Description,
		YoutubeURL:   v.YoutubeUrl,
		YoutubeID:    v.YoutubeID,
		EmbedURL:     youtube.EmbedURL(v.YoutubeID),
		ThumbnailURL: youtube.ThumbnailURL(v.YoutubeID),
		IsAcoustic:   v.IsAcoustic,
		DisplayOrder: v.DisplayOrder,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

// PhotoView is the JSON form of a photo. UploadedBy is only filled for admins.
type PhotoView struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Filename     string    `json:"filename"`
	URL          string    `json:"url"`
	ThumbnailURL string    `json:"thumbnail_url"`
	Width        int64     `json:"width"`
	Height       int64     `json:"height"`
	UploadedBy   string    `json:"uploaded_by,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewPhotoView converts a stored photo, including the uploader.
func NewPhotoView(p store.Photo) PhotoView {
	return PhotoView{
		ID:           p.ID,
		Title:        p.Title,
		Filename:     p.Filename,
		URL:          p.FilePath,
		ThumbnailURL: p.ThumbnailPath,
		Width:        p.Width,
		Height:       p.Height,
		UploadedBy:   p.UploadedBy,
		CreatedAt:    p.CreatedAt,
	}
}

// SubscriberView is the JSON form of a subscriber. The unsubscribe token
// is never exposed.
type SubscriberView struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Name         *string   `json:"name"`
	IsActive     bool      `json:"is_active"`
	SubscribedAt time.Time `json:"subscribed_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewSubscriberView converts a stored subscriber.
func NewSubscriberView(s store.Subscriber) SubscriberView {
	return SubscriberView{
		ID:           s.ID,
		Email:        s.Email,
		Name:         util.StringPtr(s.Name),
		IsActive:     s.IsActive,
		SubscribedAt: s.SubscribedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

// Views serves the public listings, cached until the next content change
// or the TTL, whichever comes first.
type Views struct {
	queries *store.Queries
	cache   cache.Cache
	ttl     time.Duration
	now     func() time.Time
}

// NewViews creates the public read views. c may be nil to disable caching.
func NewViews(db *sql.DB, c cache.Cache, ttl time.Duration) *Views {
	return &Views{queries: store.New(db), cache: c, ttl: ttl, now: time.Now}
}

// UpcomingEvents returns events on or after now, soonest first. A non-nil
// acoustic restricts the listing to acoustic or full-band shows.
func (v *Views) UpcomingEvents(ctx context.Context, limit int, acoustic *bool) ([]EventView, error) {
	limit = clampLimit(limit, DefaultUpcomingLimit)
	key := "views:events:upcoming:" + strconv.Itoa(limit) + ":" + flagKey(acoustic)

	return v.eventListing(ctx, key, func(ctx context.Context, now time.Time) ([]store.Event, error) {
		events, err := v.queries.ListUpcomingEvents(ctx, store.ListUpcomingEventsParams{
			Now:        now,
			IsAcoustic: util.NullBoolFromPtr(acoustic),
			Limit:      int64(limit),
		})
		if err != nil {
			return nil, fmt.Errorf("listing upcoming events: %w", err)
		}
		return events, nil
	})
}

// PastEvents returns events before now, most recent first.
func (v *Views) PastEvents(ctx context.Context, limit int) ([]EventView, error) {
	limit = clampLimit(limit, DefaultPastLimit)
	key := "views:events:past:" + strconv.Itoa(limit)

	return v.eventListing(ctx, key, func(ctx context.Context, now time.Time) ([]store.Event, error) {
		events, err := v.queries.ListPastEvents(ctx, store.ListPastEventsParams{
			Now:   now,
			Limit: int64(limit),
		})
		if err != nil {
			return nil, fmt.Errorf("listing past events: %w", err)
		}
		return events, nil
	})
}

// cachedEvents is a cached event listing. It is stale once the clock passes
// NextStart, when the soonest upcoming event moves to the past.
type cachedEvents struct {
	Events    []EventView `json:"events"`
	NextStart *time.Time  `json:"next_start,omitempty"`
}

func (v *Views) eventListing(ctx context.Context, key string, load func(context.Context, time.Time) ([]store.Event, error)) ([]EventView, error) {
	fetch := func(ctx context.Context) (cachedEvents, error) {
		now := v.now().UTC()
		events, err := load(ctx, now)
		if err != nil {
			return cachedEvents{}, err
		}
		next, err := v.queries.ListUpcomingEvents(ctx, store.ListUpcomingEventsParams{Now: now, Limit: 1})
		if err != nil {
			return cachedEvents{}, fmt.Errorf("finding next event: %w", err)
		}
		listing := cachedEvents{Events: MapSlice(events, NewEventView)}
		if len(next) > 0 {
			listing.NextStart = &next[0].EventDate
		}
		return listing, nil
	}

	listing, err := remember(ctx, v, key, fetch)
	if err != nil {
		return nil, err
	}
	if v.cache != nil && listing.NextStart != nil && v.now().After(*listing.NextStart) {
		if err := v.cache.Delete(ctx, key); err != nil {
			slog.Warn("cache delete failed", "key", key, "error", err)
		}
		if listing, err = remember(ctx, v, key, fetch); err != nil {
			return nil, err
		}
	}
	return listing.Events, nil
}

// Videos returns videos in display order, optionally filtered by acoustic.
func (v *Views) Videos(ctx context.Context, limit int, acoustic *bool) ([]VideoView, error) {
	limit = clampLimit(limit, DefaultVideoLimit)
	key := "views:videos:" + strconv.Itoa(limit) + ":" + flagKey(acoustic)

	return remember(ctx, v, key, func(ctx context.Context) ([]VideoView, error) {
		videos, err := v.queries.ListPublicVideos(ctx, store.ListPublicVideosParams{
			IsAcoustic: util.NullBoolFromPtr(acoustic),
			Limit:      int64(limit),
		})
		if err != nil {
			return nil, fmt.Errorf("listing videos: %w", err)
		}
		return MapSlice(videos, NewVideoView), nil
	})
}

// Photos returns the newest gallery photos without uploader details.
func (v *Views) Photos(ctx context.Context, limit int) ([]PhotoView, error) {
	limit = clampLimit(limit, DefaultPhotoLimit)
	key := "views:photos:" + strconv.Itoa(limit)

	return remember(ctx, v, key, func(ctx context.Context) ([]PhotoView, error) {
		photos, err := v.queries.ListRecentPhotos(ctx, int64(limit))
		if err != nil {
			return nil, fmt.Errorf("listing photos: %w", err)
		}
		return MapSlice(photos, func(p store.Photo) PhotoView {
			pv := NewPhotoView(p)
			pv.UploadedBy = ""
			return pv
		}), nil
	})
}

// LastModified returns the newest change per content kind ("events",
// "videos", "photos"). Kinds without rows are omitted.
func (v *Views) LastModified(ctx context.Context) (map[string]time.Time, error) {
	return remember(ctx, v, "views:lastmod", func(ctx context.Context) (map[string]time.Time, error) {
		out := make(map[string]time.Time)

		events, err := v.queries.ListEvents(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing events: %w", err)
		}
		for _, e := range events {
			latest(out, "events", e.UpdatedAt)
		}

		videos, err := v.queries.ListVideos(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing videos: %w", err)
		}
		for _, vid := range videos {
			latest(out, "videos", vid.UpdatedAt)
		}

		photos, err := v.queries.ListRecentPhotos(ctx, 1)
		if err != nil {
			return nil, fmt.Errorf("listing photos: %w", err)
		}
		for _, p := range photos {
			latest(out, "photos", p.CreatedAt)
		}

		return out, nil
	})
}

func latest(m map[string]time.Time, kind string, t time.Time) {
	if t.After(m[kind]) {
		m[kind] = t
	}
}

func remember[T any](ctx context.Context, v *Views, key string, load func(context.Context) (T, error)) (T, error) {
	if v.cache == nil {
		return load(ctx)
	}
	return cache.Remember(ctx, v.cache, key, v.ttl, load)
}

// MapSlice converts every item with conv.
func MapSlice[S, V any](items []S, conv func(S) V) []V {
	out := make([]V, 0, len(items))
	for _, it := range items {
		out = append(out, conv(it))
	}
	return out
}

func clampLimit(limit, def int) int {
	switch {
	case limit <= 0:
		return def
	case limit > MaxViewLimit:
		return MaxViewLimit
	default:
		return limit
	}
}

func flagKey(b *bool) string {
	if b == nil {
		return "all"
	}
	return strconv.FormatBool(*b)
}
