// Backoffice - Admin Console for the Games API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/backoffice

package api

import (
	"net/http"

	"github.com/tomtom215/backoffice/internal/logging"
)

// Index renders the dashboard with the backend connection details. The
// admin token is masked to its last four characters.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "index", &view{
		Title:       "Dashboard",
		Nav:         "dashboard",
		BaseURL:     h.client.BaseURL(),
		MaskedToken: logging.SanitizeToken(h.config.Backend.Token),
	})
}

// Health reports process liveness. It does not call the backend.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
