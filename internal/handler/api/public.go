// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/olegiv/bandsite/internal/seo"
)

// UpcomingEvents handles GET /api/events/upcoming?limit=&acoustic=.
func (h *Handler) UpcomingEvents(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryLimit(w, r)
	if !ok {
		return
	}
	acoustic, ok := queryFlag(w, r, "acoustic")
	if !ok {
		return
	}

	events, err := h.Views.UpcomingEvents(r.Context(), limit, acoustic)
	if err != nil {
		writeServiceError(w, r, err, "fetch events")
		return
	}
	WriteList(w, events, limit)
}

// PastEvents handles GET /api/events/past?limit=.
func (h *Handler) PastEvents(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryLimit(w, r)
	if !ok {
		return
	}

	events, err := h.Views.PastEvents(r.Context(), limit)
	if err != nil {
		writeServiceError(w, r, err, "fetch events")
		return
	}
	WriteList(w, events, limit)
}

// PublicVideos handles GET /api/videos?acoustic=&limit=.
func (h *Handler) PublicVideos(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryLimit(w, r)
	if !ok {
		return
	}
	acoustic, ok := queryFlag(w, r, "acoustic")
	if !ok {
		return
	}

	videos, err := h.Views.Videos(r.Context(), limit, acoustic)
	if err != nil {
		writeServiceError(w, r, err, "fetch videos")
		return
	}
	WriteList(w, videos, limit)
}

// PublicPhotos handles GET /api/photos?limit=.
func (h *Handler) PublicPhotos(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryLimit(w, r)
	if !ok {
		return
	}

	photos, err := h.Views.Photos(r.Context(), limit)
	if err != nil {
		writeServiceError(w, r, err, "fetch photos")
		return
	}
	WriteList(w, photos, limit)
}

// Robots handles GET /robots.txt.
func (h *Handler) Robots(w http.ResponseWriter, _ *http.Request) {
	content := seo.NewRobotsBuilder(seo.RobotsConfig{
		SiteURL:     h.SiteURL,
		DisallowAll: h.DisallowCrawlers,
	}).Build()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write([]byte(content))
}

// Sitemap handles GET /sitemap.xml.
func (h *Handler) Sitemap(w http.ResponseWriter, r *http.Request) {
	lastMod, err := h.Views.LastModified(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "build sitemap")
		return
	}

	data, err := seo.GenerateSitemap(h.SiteURL, seo.MarketingPages, lastMod)
	if err != nil {
		writeServiceError(w, r, err, "build sitemap")
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(data)
}
