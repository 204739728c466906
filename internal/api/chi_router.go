// Backoffice - Admin Console for the Games API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/backoffice

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/backoffice/internal/auth"
	"github.com/tomtom215/backoffice/internal/config"
	"github.com/tomtom215/backoffice/internal/middleware"
)

// Router wires the console routes.
type Router struct {
	handler       *Handler
	sessions      *auth.Sessions
	config        *config.Config
	chiMiddleware *ChiMiddleware
}

// NewRouter creates the router.
func NewRouter(cfg *config.Config, handler *Handler, sessions *auth.Sessions) *Router {
	return &Router{
		handler:       handler,
		sessions:      sessions,
		config:        cfg,
		chiMiddleware: NewChiMiddleware(ChiMiddlewareConfigFrom(cfg)),
	}
}

// SetupChi configures all HTTP routes using Chi router.
func (router *Router) SetupChi() http.Handler {
	h := router.handler
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)        // Extract real IP from X-Forwarded-For
	r.Use(middleware.RequestLogger)    // After RealIP so logs carry the client address
	r.Use(chimiddleware.Recoverer)     // Recover from panics
	r.Use(router.chiMiddleware.CORS()) // Global so it sees OPTIONS preflight
	r.Use(SecurityHeaders())
	r.Use(middleware.PrometheusMetrics)

	// ========================
	// Public Endpoints
	// ========================
	r.Get("/health", h.Health)
	if router.config.Metrics.Enabled {
		r.Handle(router.config.Metrics.Path, promhttp.Handler())
	}

	r.Get("/login", h.Login)
	r.With(router.chiMiddleware.RateLimitLogin()).Post("/login", h.Login)
	r.Get("/logout", h.Logout)

	// ========================
	// Console (login required)
	// ========================
	r.Group(func(r chi.Router) {
		r.Use(router.sessions.RequireLogin)

		r.Get("/", h.Index)

		r.Route("/messages", func(r chi.Router) {
			r.Get("/", h.ListMessages)
			r.Get("/new", h.NewMessageForm)
			r.Post("/new", h.CreateMessage)
			r.Get("/{id}", h.ViewMessage)
			r.Get("/{id}/edit", h.EditMessageForm)
			r.Post("/{id}/edit", h.UpdateMessage)
			r.Post("/{id}/delete", h.DeleteMessage)
		})

		r.Route("/candidates", func(r chi.Router) {
			r.Get("/", h.ListCandidates)
			r.Get("/new", h.NewCandidateForm)
			r.Post("/new", h.CreateCandidate)
			r.Get("/{id}/edit", h.EditCandidateForm)
			r.Post("/{id}/edit", h.UpdateCandidate)
			r.Post("/{id}/delete", h.DeleteCandidate)
		})

		r.Route("/games", func(r chi.Router) {
			r.Get("/in-progress", h.GamesInProgress)
			r.Get("/historical", h.GamesHistorical)
			r.Get("/map", h.GamesMap)
			r.Get("/map/markers.json", h.GamesMarkers)
		})
	})

	return r
}
