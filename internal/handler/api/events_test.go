// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/bandsite/internal/service"
)

func createEvent(t *testing.T, env *testEnv, token string, req EventRequest) service.EventView {
	t.Helper()
	rec := env.request(http.MethodPost, "/api/admin/events", token, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return unmarshalData[service.EventView](t, rec)
}

func TestEvents_CRUD(t *testing.T) {
	env := newTestEnv(t)
	token := env.login()

	created := createEvent(t, env, token, EventRequest{
		Title:       "Record release show",
		Description: "Support from **The Openers**",
		Venue:       "The Lexington",
		Address:     "96-98 Pentonville Rd, London",
		EventDate:   futureDate(72 * time.Hour),
		TicketURL:   "https://tickets.example/lex",
	})
	assert.NotZero(t, created.ID)
	assert.Equal(t, "The Lexington", created.Venue)
	assert.Contains(t, created.DescriptionHTML, "<strong>The Openers</strong>")
	assert.Nil(t, created.EndDate)

	path := "/api/admin/events/" + strconv.FormatInt(created.ID, 10)

	rec := env.request(http.MethodGet, path, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created.Title, unmarshalData[service.EventView](t, rec).Title)

	rec = env.request(http.MethodPut, path, token, EventRequest{
		Title:      "Record release show (moved)",
		Venue:      "Oslo Hackney",
		EventDate:  futureDate(96 * time.Hour),
		EndDate:    futureDate(99 * time.Hour),
		IsAcoustic: true,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := unmarshalData[service.EventView](t, rec)
	assert.Equal(t, "Oslo Hackney", updated.Venue)
	assert.True(t, updated.IsAcoustic)
	require.NotNil(t, updated.EndDate)

	rec = env.request(http.MethodGet, "/api/admin/events", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	events, meta := unmarshalList[service.EventView](t, rec)
	assert.Len(t, events, 1)
	require.NotNil(t, meta)
	assert.Equal(t, 1, meta.Total)

	rec = env.request(http.MethodDelete, path, token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.request(http.MethodGet, path, token, nil)
	assertErrorResponse(t, rec, http.StatusNotFound, "not_found")

	rec = env.request(http.MethodDelete, path, token, nil)
	assertErrorResponse(t, rec, http.StatusNotFound, "not_found")
}

func TestEvents_Validation(t *testing.T) {
	env := newTestEnv(t)
	token := env.login()

	tests := []struct {
		name  string
		req   EventRequest
		field string
	}{
		{"missing title", EventRequest{Venue: "Venue", EventDate: futureDate(time.Hour)}, "title"},
		{"missing venue", EventRequest{Title: "Show", EventDate: futureDate(time.Hour)}, "venue"},
		{"missing date", EventRequest{Title: "Show", Venue: "Venue"}, "event_date"},
		{"bad date", EventRequest{Title: "Show", Venue: "Venue", EventDate: "next friday"}, "event_date"},
		{"bad end date", EventRequest{Title: "Show", Venue: "Venue", EventDate: futureDate(time.Hour), EndDate: "soon"}, "end_date"},
		{"end before start", EventRequest{Title: "Show", Venue: "Venue", EventDate: futureDate(48 * time.Hour), EndDate: futureDate(24 * time.Hour)}, "end_date"},
		{"bad ticket url", EventRequest{Title: "Show", Venue: "Venue", EventDate: futureDate(time.Hour), TicketURL: "javascript:alert(1)"}, "ticket_url"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.request(http.MethodPost, "/api/admin/events", token, tt.req)
			resp := assertErrorResponse(t, rec, http.StatusBadRequest, "validation_error")
			assert.Contains(t, resp.Error.Details, tt.field)
		})
	}
}

func TestEvents_DateLayouts(t *testing.T) {
	env := newTestEnv(t)
	token := env.login()

	for _, date := range []string{"2030-06-01T20:30:00Z", "2030-06-01T20:30:00", "2030-06-01T20:30", "2030-06-01"} {
		t.Run(date, func(t *testing.T) {
			ev := createEvent(t, env, token, EventRequest{Title: "Show", Venue: "Venue", EventDate: date})
			assert.Equal(t, 2030, ev.EventDate.Year())
			assert.Equal(t, time.June, ev.EventDate.Month())
			assert.Equal(t, time.UTC, ev.EventDate.Location())
		})
	}
}

func TestEvents_BadRequests(t *testing.T) {
	env := newTestEnv(t)
	token := env.login()

	rec := env.request(http.MethodGet, "/api/admin/events/abc", token, nil)
	assertErrorResponse(t, rec, http.StatusBadRequest, "bad_request")

	rec = env.request(http.MethodPut, "/api/admin/events/999", token, EventRequest{Title: "Show", Venue: "Venue", EventDate: futureDate(time.Hour)})
	assertErrorResponse(t, rec, http.StatusNotFound, "not_found")

	rec = env.request(http.MethodPost, "/api/admin/events", token, "not an object")
	assertErrorResponse(t, rec, http.StatusBadRequest, "bad_request")
}
