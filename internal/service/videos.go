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
	"github.com/olegiv/bandsite/internal/youtube"
)

// VideoInput carries the editable fields of a video.
type VideoInput struct {
	Title        string
	Description  string
	YoutubeURL   string
	IsAcoustic   bool
	DisplayOrder int64
}

// VideoService manages the embedded YouTube videos.
type VideoService struct {
	queries *store.Queries
	cache   cache.Cache
	now     func() time.Time
}

// NewVideoService creates a VideoService. c may be nil.
func NewVideoService(db *sql.DB, c cache.Cache) *VideoService {
	return &VideoService{queries: store.New(db), cache: c, now: time.Now}
}

// List returns all videos by display order, ties broken by id.
func (s *VideoService) List(ctx context.Context) ([]store.Video, error) {
	videos, err := s.queries.ListVideos(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing videos: %w", err)
	}
	return videos, nil
}

// Get returns the video with id.
func (s *VideoService) Get(ctx context.Context, id int64) (store.Video, error) {
	v, err := s.queries.GetVideoByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Video{}, ErrNotFound
	}
	if err != nil {
		return store.Video{}, fmt.Errorf("loading video: %w", err)
	}
	return v, nil
}

// Create stores a video. The YouTube id is derived from the URL; an
// unrecognized URL fails with youtube.ErrUnrecognizedReference.
func (s *VideoService) Create(ctx context.Context, in VideoInput) (store.Video, error) {
	in = in.normalized()
	if err := in.validate(); err != nil {
		return store.Video{}, err
	}

	id, err := youtube.ExtractID(in.YoutubeURL)
	if err != nil {
		return store.Video{}, err
	}

	now := s.now().UTC()
	v, err := s.queries.CreateVideo(ctx, store.CreateVideoParams{
		Title:        in.Title,
		Description:  in.Description,
		YoutubeUrl:   in.YoutubeURL,
		YoutubeID:    id,
		IsAcoustic:   in.IsAcoustic,
		DisplayOrder: in.DisplayOrder,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return store.Video{}, fmt.Errorf("creating video: %w", err)
	}

	invalidateViews(ctx, s.cache)
	return v, nil
}

// Update replaces the editable fields of the video with id. The YouTube id
// is derived again only when the URL changed.
func (s *VideoService) Update(ctx context.Context, id int64, in VideoInput) (store.Video, error) {
	in = in.normalized()
	if err := in.validate(); err != nil {
		return store.Video{}, err
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return store.Video{}, err
	}

	youtubeID := current.YoutubeID
	if in.YoutubeURL != current.YoutubeUrl {
		if youtubeID, err = youtube.ExtractID(in.YoutubeURL); err != nil {
			return store.Video{}, err
		}
	}

	v, err := s.queries.UpdateVideo(ctx, store.UpdateVideoParams{
		Title:        in.Title,
		Description:  in.Description,
		YoutubeUrl:   in.YoutubeURL,
		YoutubeID:    youtubeID,
		IsAcoustic:   in.IsAcoustic,
		DisplayOrder: in.DisplayOrder,
		UpdatedAt:    s.now().UTC(),
		ID:           id,
	})
	if errors.Is(err, sql.ErrNoRows) {
		return store.Video{}, ErrNotFound
	}
	if err != nil {
		return store.Video{}, fmt.Errorf("updating video: %w", err)
	}

	invalidateViews(ctx, s.cache)
	return v, nil
}

// Delete removes the video with id.
func (s *VideoService) Delete(ctx context.Context, id int64) error {
	n, err := s.queries.DeleteVideo(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting video: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	invalidateViews(ctx, s.cache)
	return nil
}

func (in VideoInput) normalized() VideoInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.YoutubeURL = strings.TrimSpace(in.YoutubeURL)
	return in
}

func (in VideoInput) validate() error {
	v := &ValidationError{}
	if in.Title == "" {
		v.Add("title", "Title is required")
	} else if len(in.Title) > MaxTitleLength {
		v.Add("title", fmt.Sprintf("Title must be at most %d characters", MaxTitleLength))
	}
	if in.YoutubeURL == "" {
		v.Add("youtube_url", "YouTube URL is required")
	}
	if len(in.Description) > MaxDescriptionLength {
		v.Add("description", fmt.Sprintf("Description must be at most %d characters", MaxDescriptionLength))
	}
	return v.Err()
}
