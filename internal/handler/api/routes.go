// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Middlewares are the route-specific middlewares of the API.
type Middlewares struct {
	// RequireAdmin guards /admin; required.
	RequireAdmin func(http.Handler) http.Handler
	// LoginLimit wraps login and setup; optional.
	LoginLimit func(http.Handler) http.Handler
	// SubscribeLimit wraps the subscribe route; optional.
	SubscribeLimit func(http.Handler) http.Handler
}

// Routes returns the router mounted at /api.
func (h *Handler) Routes(mw Middlewares) chi.Router {
	r := chi.NewRouter()

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		WriteNotFound(w, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed", nil)
	})

	// Public listings
	r.Get("/events/upcoming", h.UpcomingEvents)
	r.Get("/events/past", h.PastEvents)
	r.Get("/videos", h.PublicVideos)
	r.Get("/photos", h.PublicPhotos)

	// Newsletter
	r.With(optional(mw.SubscribeLimit)).Post("/subscribe", h.Subscribe)
	r.Get("/unsubscribe/{token}", h.UnsubscribeStatus)
	r.Post("/unsubscribe/{token}", h.Unsubscribe)

	// Session
	r.With(optional(mw.LoginLimit)).Post("/login", h.Login)
	r.Post("/logout", h.Logout)
	if h.SetupKey != "" {
		r.With(optional(mw.LoginLimit)).Post("/setup", h.Setup)
	}

	r.Route("/admin", func(r chi.Router) {
		r.Use(mw.RequireAdmin)

		r.Get("/me", h.Me)
		r.Post("/change-password", h.ChangePassword)

		r.Route("/events", func(r chi.Router) {
			r.Get("/", h.ListEvents)
			r.Post("/", h.CreateEvent)
			r.Get("/{id}", h.GetEvent)
			r.Put("/{id}", h.UpdateEvent)
			r.Delete("/{id}", h.DeleteEvent)
		})

		r.Route("/videos", func(r chi.Router) {
			r.Get("/", h.ListVideos)
			r.Post("/", h.CreateVideo)
			r.Get("/{id}", h.GetVideo)
			r.Put("/{id}", h.UpdateVideo)
			r.Delete("/{id}", h.DeleteVideo)
		})

		r.Route("/photos", func(r chi.Router) {
			r.Get("/", h.ListPhotos)
			r.Post("/", h.UploadPhotos)
			r.Delete("/{id}", h.DeletePhoto)
		})

		r.Route("/subscribers", func(r chi.Router) {
			r.Get("/", h.ListSubscribers)
			r.Delete("/{id}", h.DeleteSubscriber)
		})
	})

	return r
}

func optional(mw func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	if mw == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return mw
}
