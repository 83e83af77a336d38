// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/olegiv/bandsite/internal/service"
)

// eventDateLayouts are the accepted forms of event_date and end_date. The
// admin form posts datetime-local values without a zone; those are UTC.
var eventDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// EventRequest is the body of event create and update requests.
type EventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Venue       string `json:"venue"`
	Address     string `json:"address"`
	EventDate   string `json:"event_date"`
	EndDate     string `json:"end_date"`
	TicketURL   string `json:"ticket_url"`
	IsAcoustic  bool   `json:"is_acoustic"`
}

// input converts the request, reporting unparsable dates as field errors.
func (req EventRequest) input() (service.EventInput, map[string]string) {
	in := service.EventInput{
		Title:       req.Title,
		Description: req.Description,
		Venue:       req.Venue,
		Address:     req.Address,
		TicketURL:   req.TicketURL,
		IsAcoustic:  req.IsAcoustic,
	}

	errs := make(map[string]string)
	if t, ok := parseEventDate(req.EventDate); ok {
		in.EventDate = t
	} else {
		errs["event_date"] = "Event date must be a valid date"
	}
	if t, ok := parseEventDate(req.EndDate); ok {
		in.EndDate = t
	} else {
		errs["end_date"] = "End date must be a valid date"
	}
	return in, errs
}

// parseEventDate returns nil, true for an empty value.
func parseEventDate(s string) (*time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, true
	}
	for _, layout := range eventDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t, true
		}
	}
	return nil, false
}

func (h *Handler) decodeEvent(w http.ResponseWriter, r *http.Request) (service.EventInput, bool) {
	var req EventRequest
	if !decodeJSON(w, r, &req) {
		return service.EventInput{}, false
	}
	in, errs := req.input()
	if len(errs) > 0 {
		WriteValidationError(w, errs)
		return service.EventInput{}, false
	}
	return in, true
}

// ListEvents handles GET /api/admin/events.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.Events.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "fetch events")
		return
	}
	WriteList(w, service.MapSlice(events, service.NewEventView), 0)
}

// GetEvent handles GET /api/admin/events/{id}.
func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "event")
	if !ok {
		return
	}
	event, err := h.Events.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "fetch event")
		return
	}
	WriteSuccess(w, service.NewEventView(event), nil)
}

// CreateEvent handles POST /api/admin/events.
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	in, ok := h.decodeEvent(w, r)
	if !ok {
		return
	}
	event, err := h.Events.Create(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err, "create event")
		return
	}
	WriteCreated(w, service.NewEventView(event))
}

// UpdateEvent handles PUT /api/admin/events/{id}.
func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "event")
	if !ok {
		return
	}
	in, ok := h.decodeEvent(w, r)
	if !ok {
		return
	}
	event, err := h.Events.Update(r.Context(), id, in)
	if err != nil {
		writeServiceError(w, r, err, "update event")
		return
	}
	WriteSuccess(w, service.NewEventView(event), nil)
}

// DeleteEvent handles DELETE /api/admin/events/{id}.
func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "event")
	if !ok {
		return
	}
	if err := h.Events.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err, "delete event")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
