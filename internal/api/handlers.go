// Backoffice - Admin Console for the Games API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/backoffice

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/backoffice/internal/auth"
	"github.com/tomtom215/backoffice/internal/backend"
	"github.com/tomtom215/backoffice/internal/config"
	"github.com/tomtom215/backoffice/internal/logging"
)

// Handler holds the dependencies of every console route.
type Handler struct {
	client    *backend.Client
	sessions  *auth.Sessions
	config    *config.Config
	templates *templateSet
	security  *logging.SecurityLogger
}

// NewHandler creates the route handlers. Templates are parsed here so a
// broken template fails startup rather than the first request.
func NewHandler(cfg *config.Config, client *backend.Client, sessions *auth.Sessions) (*Handler, error) {
	templates, err := loadTemplates()
	if err != nil {
		return nil, err
	}
	return &Handler{
		client:    client,
		sessions:  sessions,
		config:    cfg,
		templates: templates,
		security:  logging.NewSecurityLogger(),
	}, nil
}

// flash queues a message for the next rendered page.
func (h *Handler) flash(r *http.Request, category, message string) {
	h.sessions.AddFlash(r, category, message)
}

// flashAPIError surfaces a failed backend call to the user. Unsupported
// methods are programming errors and are logged as well.
func (h *Handler) flashAPIError(r *http.Request, err error) {
	// A missing record gets the caller's "not found" flash only.
	if errors.Is(err, backend.ErrNotFound) {
		return
	}
	if errors.Is(err, backend.ErrUnsupportedMethod) {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Unsupported backend method")
	}
	h.flash(r, auth.FlashError, "API Error: "+sanitizeLogValue(err.Error()))
}

// saveSession writes the session cookie; failures are logged and the
// response continues without it.
func (h *Handler) saveSession(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Save(w, r); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to save session")
	}
}

// redirect saves the session and issues a 302.
func (h *Handler) redirect(w http.ResponseWriter, r *http.Request, target string) {
	h.saveSession(w, r)
	http.Redirect(w, r, target, http.StatusFound)
}

// clientIP returns the request's remote address. chi's RealIP middleware has
// already replaced it with the forwarded client address when present.
func clientIP(r *http.Request) string {
	return r.RemoteAddr
}
