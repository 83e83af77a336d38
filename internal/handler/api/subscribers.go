// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/bandsite/internal/service"
)

// SubscribeRequest is the body of POST /api/subscribe.
type SubscribeRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// MessageResponse carries a human-readable outcome.
type MessageResponse struct {
	Message string `json:"message"`
}

// Subscribe handles POST /api/subscribe.
func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req SubscribeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := h.Subscribers.Subscribe(r.Context(), req.Email, req.Name)
	if err != nil {
		writeServiceError(w, r, err, "subscribe")
		return
	}
	WriteSuccess(w, MessageResponse{Message: res.Message()}, nil)
}

// UnsubscribeStatusResponse describes the subscription behind an
// unsubscribe link without changing it.
type UnsubscribeStatusResponse struct {
	Email    string `json:"email"`
	IsActive bool   `json:"is_active"`
	Message  string `json:"message"`
}

// UnsubscribeStatus handles GET /api/unsubscribe/{token}. Link scanners
// follow GETs, so only POST deactivates.
func (h *Handler) UnsubscribeStatus(w http.ResponseWriter, r *http.Request) {
	sub, err := h.Subscribers.Lookup(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		writeServiceError(w, r, err, "unsubscribe")
		return
	}

	msg := "POST to this URL to unsubscribe."
	if !sub.IsActive {
		msg = "You are already unsubscribed."
	}
	WriteSuccess(w, UnsubscribeStatusResponse{Email: sub.Email, IsActive: sub.IsActive, Message: msg}, nil)
}

// Unsubscribe handles POST /api/unsubscribe/{token}.
func (h *Handler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	if err := h.Subscribers.Unsubscribe(r.Context(), chi.URLParam(r, "token")); err != nil {
		writeServiceError(w, r, err, "unsubscribe")
		return
	}
	WriteSuccess(w, MessageResponse{Message: "You have been unsubscribed."}, nil)
}

// ListSubscribers handles GET /api/admin/subscribers.
func (h *Handler) ListSubscribers(w http.ResponseWriter, r *http.Request) {
	subs, err := h.Subscribers.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "fetch subscribers")
		return
	}
	WriteList(w, service.MapSlice(subs, service.NewSubscriberView), 0)
}

// DeleteSubscriber handles DELETE /api/admin/subscribers/{id}.
func (h *Handler) DeleteSubscriber(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "subscriber")
	if !ok {
		return
	}
	if err := h.Subscribers.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err, "delete subscriber")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
