// Backoffice - Admin Console for the Games API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/backoffice

package api

import (
	"net/http"

	"github.com/tomtom215/backoffice/internal/backend"
	"github.com/tomtom215/backoffice/internal/logging"
)

// GamesInProgress renders one page of running games.
func (h *Handler) GamesInProgress(w http.ResponseWriter, r *http.Request) {
	h.listGames(w, r, backend.GamesInProgress, "Games In Progress")
}

// GamesHistorical renders one page of finished games.
func (h *Handler) GamesHistorical(w http.ResponseWriter, r *http.Request) {
	h.listGames(w, r, backend.GamesHistorical, "Historical Games")
}

// listGames fetches the requested page. A backend failure degrades to an
// empty page with zero total.
func (h *Handler) listGames(w http.ResponseWriter, r *http.Request, kind, title string) {
	q := parsePageQuery(r, h.config.API.DefaultPageSize, h.config.API.MaxPageSize)

	page, err := h.client.ListGames(r.Context(), kind, q.Limit, q.Offset())
	if err != nil {
		h.flashAPIError(r, err)
		page = &backend.GamesPage{Games: []backend.Record{}}
	}

	h.render(w, r, http.StatusOK, "games", &view{
		Title:   title,
		Nav:     kind,
		Kind:    kind,
		Records: page.Games,
		Page:    newPageInfo(q, page.Total, page.HasMore),
	})
}

// GamesMap renders the map of geolocated games.
func (h *Handler) GamesMap(w http.ResponseWriter, r *http.Request) {
	markers := h.collectMarkers(r, true)
	h.render(w, r, http.StatusOK, "games_map", &view{Title: "Games Map", Nav: "map", Markers: markers})
}

// GamesMarkers returns the map markers as JSON. Backend failures are logged
// and yield the markers that could be built.
func (h *Handler) GamesMarkers(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.collectMarkers(r, false))
}

// collectMarkers fetches both listings unpaginated (up to the map limit each)
// and builds markers for every geolocated game.
func (h *Handler) collectMarkers(r *http.Request, flash bool) []Marker {
	ctx := r.Context()
	limit := h.config.Games.MapLimit
	markers := []Marker{}

	for _, kind := range []string{backend.GamesInProgress, backend.GamesHistorical} {
		page, err := h.client.ListGames(ctx, kind, limit, 0)
		if err != nil {
			if flash {
				h.flashAPIError(r, err)
			}
			logging.Ctx(ctx).Warn().Err(err).Str("kind", kind).Msg("Failed to fetch games for map")
			continue
		}
		markers = append(markers, BuildMarkers(ctx, page.Games, kind)...)
	}
	return markers
}
