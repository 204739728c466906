// Backoffice - Admin Console for the Games API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/backoffice

package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/backoffice/internal/backend"
	"github.com/tomtom215/backoffice/internal/logging"
)

// ListCandidates renders all recruitment candidates.
func (h *Handler) ListCandidates(w http.ResponseWriter, r *http.Request) {
	candidates, err := h.client.ListCandidates(r.Context())
	if err != nil {
		h.flashAPIError(r, err)
		candidates = []backend.Record{}
	}
	h.render(w, r, http.StatusOK, "candidates", &view{Title: "Candidates", Nav: "candidates", Records: candidates})
}

// NewCandidateForm renders an empty candidate form.
func (h *Handler) NewCandidateForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "record_form", &view{
		Title:    "New Candidate",
		Nav:      "candidates",
		Resource: "candidate",
		FormURL:  "/candidates/new",
		IsNew:    true,
	})
}

// CreateCandidate forwards a JSON candidate to the backend.
func (h *Handler) CreateCandidate(w http.ResponseWriter, r *http.Request) {
	h.forwardJSON(w, r, candidatesResource, "create", "created", h.client.CreateCandidate)
}

// EditCandidateForm renders the candidate form pre-filled from the backend.
func (h *Handler) EditCandidateForm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	candidate, ok := h.findCandidate(r, id)
	if !ok {
		h.notFound(w, r, candidatesResource)
		return
	}
	h.render(w, r, http.StatusOK, "record_form", &view{
		Title:    "Edit Candidate",
		Nav:      "candidates",
		Resource: "candidate",
		FormURL:  "/candidates/" + id + "/edit",
		Record:   candidate,
	})
}

// findCandidate looks a candidate up by id.
//
// The single-resource endpoint is tried first. When the backend does not
// serve it (404 or 405) the full list is fetched and scanned, comparing ids
// by their string form so numeric ids match the URL parameter. A null or
// empty record is not found. Any other failure is flashed and reported as
// not found.
func (h *Handler) findCandidate(r *http.Request, id string) (backend.Record, bool) {
	ctx := r.Context()

	candidate, err := h.client.GetCandidate(ctx, id)
	if err == nil {
		return candidate, true
	}
	if code := backend.StatusCode(err); code != http.StatusNotFound && code != http.StatusMethodNotAllowed {
		h.flashAPIError(r, err)
		return nil, false
	}

	logging.Ctx(ctx).Debug().Str("id", sanitizeLogValue(id)).Msg("Single candidate lookup unavailable, scanning list")

	candidates, err := h.client.ListCandidates(ctx)
	if err != nil {
		h.flashAPIError(r, err)
		return nil, false
	}
	for _, c := range candidates {
		if c.ID() == id {
			return c, true
		}
	}
	return nil, false
}

// UpdateCandidate forwards a JSON update to the backend.
func (h *Handler) UpdateCandidate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.forwardJSON(w, r, candidatesResource, "update", "updated", func(ctx context.Context, body json.RawMessage) (json.RawMessage, error) {
		return h.client.UpdateCandidate(ctx, id, body)
	})
}

// DeleteCandidate deletes a candidate and returns to the list.
func (h *Handler) DeleteCandidate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.deleteRecord(w, r, candidatesResource, func(ctx context.Context) (json.RawMessage, error) {
		return h.client.DeleteCandidate(ctx, id)
	})
}
