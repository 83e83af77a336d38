// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides the JSON handlers of the band site: the public
// listings, the subscription endpoints and the admin CRUD surface.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/olegiv/bandsite/internal/cache"
	"github.com/olegiv/bandsite/internal/middleware"
	"github.com/olegiv/bandsite/internal/service"
	"github.com/olegiv/bandsite/internal/youtube"
)

// maxJSONBody caps JSON request bodies.
const maxJSONBody = 1 << 20

// Deps are the collaborators of the API handlers.
type Deps struct {
	Auth        *service.Authenticator
	Events      *service.EventService
	Videos      *service.VideoService
	Photos      *service.PhotoService
	Subscribers *service.SubscriberService
	Views       *service.Views

	Sessions        *scs.SessionManager
	LoginProtection *middleware.LoginProtection
	// Cache is reported by the admin health check; may be nil.
	Cache cache.Cache

	// SetupKey enables POST /api/setup when non-empty.
	SetupKey       string
	MaxUploadBytes int64
	UploadsDir     string
	SiteURL        string
	// DisallowCrawlers blocks all robots (staging).
	DisallowCrawlers bool
}

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	Deps
}

// NewHandler creates a new API handler.
func NewHandler(d Deps) *Handler {
	return &Handler{Deps: d}
}

// Response is the standard API response wrapper.
type Response struct {
	Data any   `json:"data"`
	Meta *Meta `json:"meta,omitempty"`
}

// Meta describes a list response.
type Meta struct {
	Total int `json:"total"`
	Limit int `json:"limit,omitempty"`
}

// ErrorResponse is the standard API error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a successful JSON response.
func WriteSuccess(w http.ResponseWriter, data any, meta *Meta) {
	WriteJSON(w, http.StatusOK, Response{Data: data, Meta: meta})
}

// WriteList writes items with a meta block holding their count.
func WriteList[T any](w http.ResponseWriter, items []T, limit int) {
	if items == nil {
		items = []T{}
	}
	WriteSuccess(w, items, &Meta{Total: len(items), Limit: limit})
}

// WriteCreated writes a 201 Created JSON response.
func WriteCreated(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusCreated, Response{Data: data})
}

// WriteError writes an error JSON response.
func WriteError(w http.ResponseWriter, statusCode int, code, message string, details map[string]string) {
	WriteJSON(w, statusCode, ErrorResponse{
		Error: ErrorDetail{Code: code, Message: message, Details: details},
	})
}

// WriteBadRequest writes a 400 Bad Request response.
func WriteBadRequest(w http.ResponseWriter, message string, details map[string]string) {
	WriteError(w, http.StatusBadRequest, "bad_request", message, details)
}

// WriteNotFound writes a 404 Not Found response.
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, "not_found", message, nil)
}

// WriteUnauthorized writes a 401 Unauthorized response.
func WriteUnauthorized(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnauthorized, "unauthorized", message, nil)
}

// WriteForbidden writes a 403 Forbidden response.
func WriteForbidden(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusForbidden, "forbidden", message, nil)
}

// WriteInternalError writes a 500 Internal Server Error response.
func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, "internal_error", message, nil)
}

// WriteValidationError writes a 400 response with field errors.
func WriteValidationError(w http.ResponseWriter, fieldErrors map[string]string) {
	WriteError(w, http.StatusBadRequest, "validation_error", "Validation failed", fieldErrors)
}

// writeServiceError maps a service error onto the API error envelope.
// action completes "Failed to ..." for unexpected errors.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, action string) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		WriteValidationError(w, verr.Fields)
	case errors.Is(err, youtube.ErrUnrecognizedReference):
		WriteError(w, http.StatusBadRequest, "invalid_reference", "Invalid YouTube URL", map[string]string{
			"youtube_url": "Could not extract video ID from URL",
		})
	case errors.Is(err, service.ErrAlreadySubscribed):
		WriteError(w, http.StatusBadRequest, "already_subscribed", "This email is already subscribed", nil)
	case errors.Is(err, service.ErrNotFound):
		WriteNotFound(w, "Not found")
	case errors.Is(err, service.ErrAlreadyExists):
		WriteError(w, http.StatusConflict, "already_exists", "Already exists", nil)
	case errors.Is(err, service.ErrUnauthenticated):
		WriteUnauthorized(w, "Authentication required")
	default:
		slog.Error("failed to "+action, "error", err, "method", r.Method, "path", r.URL.Path)
		WriteInternalError(w, "Failed to "+action)
	}
}

// decodeJSON reads a JSON body into dst. It writes a 400 and returns false
// when the body is missing or malformed.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return true
	}

	var maxErr *http.MaxBytesError
	switch {
	case errors.Is(err, io.EOF):
		WriteBadRequest(w, "Request body is required", nil)
	case errors.As(err, &maxErr):
		WriteError(w, http.StatusRequestEntityTooLarge, "payload_too_large", "Request body too large", nil)
	default:
		WriteBadRequest(w, "Invalid JSON body", nil)
	}
	return false
}

// parseIDParam reads the {id} URL parameter. It writes a 400 and returns
// false when the id is not a positive integer.
func parseIDParam(w http.ResponseWriter, r *http.Request, entityName string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		WriteBadRequest(w, "Invalid "+entityName+" ID", nil)
		return 0, false
	}
	return id, true
}

// queryLimit parses ?limit=. Zero means the view's default.
func queryLimit(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		WriteBadRequest(w, "Invalid limit", map[string]string{"limit": "Limit must be a non-negative integer"})
		return 0, false
	}
	return n, true
}

// queryFlag parses an optional boolean filter such as ?acoustic=true.
func queryFlag(w http.ResponseWriter, r *http.Request, name string) (*bool, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, true
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		WriteBadRequest(w, "Invalid "+name+" filter", map[string]string{name: "Must be true or false"})
		return nil, false
	}
	return &b, true
}
