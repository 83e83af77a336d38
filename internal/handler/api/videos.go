// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/olegiv/bandsite/internal/service"
)

// VideoRequest is the body of video create and update requests.
type VideoRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	YoutubeURL   string `json:"youtube_url"`
	IsAcoustic   bool   `json:"is_acoustic"`
	DisplayOrder int64  `json:"display_order"`
}

func (req VideoRequest) input() service.VideoInput {
	return service.VideoInput{
		Title:        req.Title,
		Description:  req.Description,
		YoutubeURL:   req.YoutubeURL,
		IsAcoustic:   req.IsAcoustic,
		DisplayOrder: req.DisplayOrder,
	}
}

// ListVideos handles GET /api/admin/videos.
func (h *Handler) ListVideos(w http.ResponseWriter, r *http.Request) {
	videos, err := h.Videos.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "fetch videos")
		return
	}
	WriteList(w, service.MapSlice(videos, service.NewVideoView), 0)
}

// GetVideo handles GET /api/admin/videos/{id}.
func (h *Handler) GetVideo(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "video")
	if !ok {
		return
	}
	video, err := h.Videos.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "fetch video")
		return
	}
	WriteSuccess(w, service.NewVideoView(video), nil)
}

// CreateVideo handles POST /api/admin/videos.
func (h *Handler) CreateVideo(w http.ResponseWriter, r *http.Request) {
	var req VideoRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	video, err := h.Videos.Create(r.Context(), req.input())
	if err != nil {
		writeServiceError(w, r, err, "create video")
		return
	}
	WriteCreated(w, service.NewVideoView(video))
}

// UpdateVideo handles PUT /api/admin/videos/{id}.
func (h *Handler) UpdateVideo(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "video")
	if !ok {
		return
	}
	var req VideoRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	video, err := h.Videos.Update(r.Context(), id, req.input())
	if err != nil {
		writeServiceError(w, r, err, "update video")
		return
	}
	WriteSuccess(w, service.NewVideoView(video), nil)
}

// DeleteVideo handles DELETE /api/admin/videos/{id}.
func (h *Handler) DeleteVideo(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "video")
	if !ok {
		return
	}
	if err := h.Videos.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err, "delete video")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
