// Backoffice - Admin Console for the Games API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/backoffice

package api

import (
	"math"
	"net/http"
	"strconv"

	"github.com/tomtom215/backoffice/internal/logging"
	"github.com/tomtom215/backoffice/internal/validation"
)

// pageQuery is the validated form of the page and limit query parameters.
type pageQuery struct {
	Page  int `validate:"min=1"`
	Limit int `validate:"min=1"`
}

// PageInfo describes one page of a games listing.
type PageInfo struct {
	Page       int
	Limit      int
	Offset     int
	Total      int
	TotalPages int
	HasMore    bool
}

// HasPrev reports whether a previous page link should be shown.
func (p *PageInfo) HasPrev() bool {
	return p.Page > 1
}

// HasNext reports whether a next page link should be shown.
func (p *PageInfo) HasNext() bool {
	return p.HasMore || p.Page < p.TotalPages
}

// parsePageQuery reads page and limit from the query string. Missing,
// non-numeric or non-positive values fall back to the defaults (page 1,
// defaultLimit); limit is capped at maxLimit. Page is clamped so that
// Page*Limit, and with it the offset and the next page number, fit in an int.
func parsePageQuery(r *http.Request, defaultLimit, maxLimit int) pageQuery {
	q := pageQuery{
		Page:  intQueryParam(r, "page", 1),
		Limit: intQueryParam(r, "limit", defaultLimit),
	}

	if err := validation.ValidateStruct(&q); err != nil {
		logging.Ctx(r.Context()).Debug().Str("error", err.Error()).Msg("Invalid pagination parameters, using defaults")
		if err.HasField("Page") {
			q.Page = 1
		}
		if err.HasField("Limit") {
			q.Limit = defaultLimit
		}
	}

	if maxLimit > 0 && q.Limit > maxLimit {
		q.Limit = maxLimit
	}
	if maxPage := (math.MaxInt - q.Limit) / q.Limit; q.Page > maxPage {
		q.Page = maxPage
	}
	return q
}

// intQueryParam parses an integer query parameter, returning def when the
// parameter is missing or not an integer.
func intQueryParam(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

// Offset returns the zero-based index of the first record on the page.
func (q pageQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// newPageInfo combines the requested page with the backend's totals.
func newPageInfo(q pageQuery, total int, hasMore bool) *PageInfo {
	return &PageInfo{
		Page:       q.Page,
		Limit:      q.Limit,
		Offset:     q.Offset(),
		Total:      total,
		TotalPages: totalPages(total, q.Limit),
		HasMore:    hasMore,
	}
}

// totalPages is ceil(total/limit), at least 1.
func totalPages(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 1
	}
	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	return pages
}
