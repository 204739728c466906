// Backoffice - Admin Console for the Games API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/backoffice

package api

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/backoffice/internal/auth"
	"github.com/tomtom215/backoffice/internal/logging"
)

// maxJSONBodyBytes bounds create and update payloads.
const maxJSONBodyBytes = 1 << 20

var errInvalidJSON = errors.New("invalid JSON body")

// resource names the user-facing texts of a CRUD resource.
type resource struct {
	singular string // "Message"
	lower    string // "message"
	listPath string // "/messages"
}

var (
	messagesResource   = resource{singular: "Message", lower: "message", listPath: "/messages"}
	candidatesResource = resource{singular: "Candidate", lower: "candidate", listPath: "/candidates"}
)

// mutation forwards a JSON body to the backend.
type mutation func(ctx context.Context, body json.RawMessage) (json.RawMessage, error)

// readJSONBody reads a request body that must be a single JSON value.
func readJSONBody(r *http.Request) (json.RawMessage, error) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxJSONBodyBytes+1))
	if err != nil || len(data) > maxJSONBodyBytes {
		return nil, errInvalidJSON
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || !json.Valid(data) {
		return nil, errInvalidJSON
	}
	return json.RawMessage(data), nil
}

// forwardJSON implements the create and update endpoints.
//
// Success flashes "<Resource> <verb> successfully" and answers with the
// backend's JSON. Failure flashes the API error and answers
// 400 {"error": "Failed to <action> <resource>"}.
func (h *Handler) forwardJSON(w http.ResponseWriter, r *http.Request, res resource, action, verb string, call mutation) {
	body, err := readJSONBody(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	result, err := call(r.Context(), body)
	if err != nil {
		h.flashAPIError(r, err)
		h.saveSession(w, r)
		respondError(w, http.StatusBadRequest, "Failed to "+action+" "+res.lower)
		return
	}

	h.flash(r, auth.FlashSuccess, res.singular+" "+verb+" successfully")
	h.saveSession(w, r)
	writeJSON(w, http.StatusOK, result)
}

// deleteRecord implements the delete endpoints. It always returns to the list.
func (h *Handler) deleteRecord(w http.ResponseWriter, r *http.Request, res resource, call func(ctx context.Context) (json.RawMessage, error)) {
	if _, err := call(r.Context()); err != nil {
		h.flashAPIError(r, err)
		logging.Ctx(r.Context()).Warn().Err(err).Str("resource", res.lower).Msg("Delete failed")
	} else {
		h.flash(r, auth.FlashSuccess, res.singular+" deleted successfully")
	}
	h.redirect(w, r, res.listPath)
}

// notFound flashes "<Resource> not found" and returns to the list.
func (h *Handler) notFound(w http.ResponseWriter, r *http.Request, res resource) {
	h.flash(r, auth.FlashError, res.singular+" not found")
	h.redirect(w, r, res.listPath)
}
