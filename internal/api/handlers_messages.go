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
)

// ListMessages renders all messages. A backend failure renders an empty list.
func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.client.ListMessages(r.Context())
	if err != nil {
		h.flashAPIError(r, err)
		messages = []backend.Record{}
	}
	h.render(w, r, http.StatusOK, "messages", &view{Title: "Messages", Nav: "messages", Records: messages})
}

// NewMessageForm renders an empty message form.
func (h *Handler) NewMessageForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "record_form", &view{
		Title:    "New Message",
		Nav:      "messages",
		Resource: "message",
		FormURL:  "/messages/new",
		IsNew:    true,
	})
}

// CreateMessage forwards a JSON message to the backend.
func (h *Handler) CreateMessage(w http.ResponseWriter, r *http.Request) {
	h.forwardJSON(w, r, messagesResource, "create", "created", h.client.CreateMessage)
}

// ViewMessage renders one message.
func (h *Handler) ViewMessage(w http.ResponseWriter, r *http.Request) {
	message, err := h.client.GetMessage(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.flashAPIError(r, err)
		h.notFound(w, r, messagesResource)
		return
	}
	h.render(w, r, http.StatusOK, "message_view", &view{Title: "Message", Nav: "messages", Record: message})
}

// EditMessageForm renders the message form pre-filled from the backend.
func (h *Handler) EditMessageForm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	message, err := h.client.GetMessage(r.Context(), id)
	if err != nil {
		h.flashAPIError(r, err)
		h.notFound(w, r, messagesResource)
		return
	}
	h.render(w, r, http.StatusOK, "record_form", &view{
		Title:    "Edit Message",
		Nav:      "messages",
		Resource: "message",
		FormURL:  "/messages/" + id + "/edit",
		Record:   message,
	})
}

// UpdateMessage forwards a JSON update to the backend.
func (h *Handler) UpdateMessage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.forwardJSON(w, r, messagesResource, "update", "updated", func(ctx context.Context, body json.RawMessage) (json.RawMessage, error) {
		return h.client.UpdateMessage(ctx, id, body)
	})
}

// DeleteMessage deletes a message and returns to the list.
func (h *Handler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.deleteRecord(w, r, messagesResource, func(ctx context.Context) (json.RawMessage, error) {
		return h.client.DeleteMessage(ctx, id)
	})
}
