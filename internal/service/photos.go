// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/olegiv/bandsite/internal/auth"
	"github.com/olegiv/bandsite/internal/cache"
	"github.com/olegiv/bandsite/internal/imaging"
	"github.com/olegiv/bandsite/internal/store"
	"github.com/olegiv/bandsite/internal/util"
)

// PublicUploadsPrefix is the URL path under which the uploads directory is served.
const PublicUploadsPrefix = "/uploads"

// maxNameAttempts bounds the retries when a generated file name is taken.
const maxNameAttempts = 5

// PhotoService stores gallery photos on disk and their records in the database.
type PhotoService struct {
	db        *sql.DB
	queries   *store.Queries
	cache     cache.Cache
	processor *imaging.Processor
	remover   *FileRemover
	maxBytes  int64
	now       func() time.Time
}

// NewPhotoService creates a PhotoService writing beneath uploadsDir and
// accepting files of at most maxBytes. c may be nil.
func NewPhotoService(db *sql.DB, c cache.Cache, uploadsDir string, maxBytes int64, remover *FileRemover) *PhotoService {
	return &PhotoService{
		db:        db,
		queries:   store.New(db),
		cache:     c,
		processor: imaging.NewProcessor(uploadsDir),
		remover:   remover,
		maxBytes:  maxBytes,
		now:       time.Now,
	}
}

// List returns all photos, newest first.
func (s *PhotoService) List(ctx context.Context) ([]store.Photo, error) {
	photos, err := s.queries.ListPhotos(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing photos: %w", err)
	}
	return photos, nil
}

// Upload stores one image read from r. name is the client-supplied file
// name; title defaults to it when empty.
func (s *PhotoService) Upload(ctx context.Context, uploader auth.Identity, title, name string, r io.Reader) (store.Photo, error) {
	original, err := util.SanitizeFilename(name)
	if err != nil {
		return store.Photo{}, invalidField("file", "File name is invalid")
	}

	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return store.Photo{}, fmt.Errorf("reading upload: %w", err)
	}
	if len(data) == 0 {
		return store.Photo{}, invalidField("file", "File is empty")
	}
	if int64(len(data)) > s.maxBytes {
		return store.Photo{}, invalidField("file", fmt.Sprintf("File exceeds the %d MB limit", s.maxBytes>>20))
	}

	result, err := s.store(data, original)
	if errors.Is(err, imaging.ErrUnsupportedFormat) {
		return store.Photo{}, invalidField("file", "File must be a JPEG, PNG, GIF or WebP image")
	}
	if err != nil {
		return store.Photo{}, err
	}

	title = strings.TrimSpace(title)
	if title == "" {
		title = strings.TrimSuffix(original, filepath.Ext(original))
	}
	if len(title) > MaxTitleLength {
		title = util.TruncateBytes(title, MaxTitleLength)
	}

	photo, err := s.queries.CreatePhoto(ctx, store.CreatePhotoParams{
		Title:         title,
		Filename:      result.Filename,
		FilePath:      publicPath(result.Filename, false),
		ThumbnailPath: publicPath(result.Filename, true),
		Width:         int64(result.Width),
		Height:        int64(result.Height),
		UploadedBy:    uploader.Email,
		CreatedAt:     s.now().UTC(),
	})
	if err != nil {
		_ = os.Remove(result.FilePath)
		_ = os.Remove(result.ThumbnailPath)
		return store.Photo{}, fmt.Errorf("creating photo: %w", err)
	}

	slog.Info("photo uploaded", "photo_id", photo.ID, "filename", photo.Filename, "uploaded_by", uploader.Email)
	invalidateViews(ctx, s.cache)
	return photo, nil
}

// Delete removes the photo record and queues its files for removal in the
// same transaction, then tries to remove them right away. A file that
// cannot be removed stays queued; the record deletion still succeeds.
func (s *PhotoService) Delete(ctx context.Context, id int64) error {
	var queued []store.FileRemoval

	err := store.InTx(ctx, s.db, func(q *store.Queries) error {
		photo, err := q.GetPhotoByID(ctx, id)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("loading photo: %w", err)
		}

		if _, err := q.DeletePhoto(ctx, id); err != nil {
			return fmt.Errorf("deleting photo: %w", err)
		}

		now := s.now().UTC()
		for _, p := range s.diskPaths(photo.Filename) {
			item, err := q.EnqueueFileRemoval(ctx, store.EnqueueFileRemovalParams{
				Path:      p,
				CreatedAt: now,
				UpdatedAt: now,
			})
			if err != nil {
				return fmt.Errorf("queueing file removal: %w", err)
			}
			queued = append(queued, item)
		}
		return nil
	})
	if err != nil {
		return err
	}

	invalidateViews(ctx, s.cache)

	if s.remover != nil {
		for _, item := range queued {
			// Failures are logged and retried by the scheduler.
			_ = s.remover.Remove(ctx, item)
		}
	}
	return nil
}

// store writes data under a timestamped name, retrying with a suffix if
// the name is already taken.
func (s *PhotoService) store(data []byte, original string) (*imaging.Result, error) {
	base, err := util.StorageName(original)
	if err != nil {
		return nil, invalidField("file", "File name is invalid")
	}
	stamp := s.now().UnixMilli()

	for attempt := 0; attempt < maxNameAttempts; attempt++ {
		name := fmt.Sprintf("%d-%s", stamp, base)
		if attempt > 0 {
			ext := filepath.Ext(base)
			name = fmt.Sprintf("%d-%s-%d%s", stamp, strings.TrimSuffix(base, ext), attempt, ext)
		}

		result, err := s.processor.Process(data, name)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return result, nil
	}
	return nil, fmt.Errorf("no free file name for %q after %d attempts", base, maxNameAttempts)
}

func (s *PhotoService) diskPaths(filename string) []string {
	dir := s.processor.Dir()
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return []string{
		filepath.Join(dir, imaging.PhotosDir, filename),
		filepath.Join(dir, imaging.PhotosDir, imaging.ThumbsDir, filename),
	}
}

func publicPath(filename string, thumb bool) string {
	if thumb {
		return path.Join(PublicUploadsPrefix, imaging.PhotosDir, imaging.ThumbsDir, filename)
	}
	return path.Join(PublicUploadsPrefix, imaging.PhotosDir, filename)
}
