// Backoffice - Admin Console for the Games API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/backoffice

package api

import (
	"math"
	"net/http/httptest"
	"testing"
)

func TestParsePageQuery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		query      string
		wantPage   int
		wantLimit  int
		wantOffset int
	}{
		{"", 1, 50, 0},
		{"page=3&limit=50", 3, 50, 100},
		{"page=2&limit=10", 2, 10, 10},
		{"page=0", 1, 50, 0},
		{"page=-4&limit=0", 1, 50, 0},
		{"page=abc&limit=xyz", 1, 50, 0},
		{"page=2&limit=900", 2, 500, 500},
		{"limit=500", 1, 500, 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.query, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest("GET", "/games/in-progress?"+tt.query, nil)
			q := parsePageQuery(r, 50, 500)
			if q.Page != tt.wantPage || q.Limit != tt.wantLimit {
				t.Errorf("parsePageQuery(%q) = %+v, want page %d limit %d", tt.query, q, tt.wantPage, tt.wantLimit)
			}
			if got := q.Offset(); got != tt.wantOffset {
				t.Errorf("Offset() = %d, want %d", got, tt.wantOffset)
			}
		})
	}
}

func TestParsePageQueryHugePage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		query string
		limit int
	}{
		{"page=4611686018427387904&limit=50", 50},
		{"page=9223372036854775807&limit=1", 1},
		{"page=9223372036854775807&limit=500", 500},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.query, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest("GET", "/games/in-progress?"+tt.query, nil)
			q := parsePageQuery(r, 50, 500)
			if q.Limit != tt.limit {
				t.Fatalf("Limit = %d, want %d", q.Limit, tt.limit)
			}
			if want := (math.MaxInt - tt.limit) / tt.limit; q.Page != want {
				t.Errorf("Page = %d, want clamp to %d", q.Page, want)
			}
			offset := q.Offset()
			if offset < 0 || offset/q.Limit != q.Page-1 {
				t.Errorf("Offset() = %d overflowed for page %d", offset, q.Page)
			}
			if q.Page+1 < q.Page {
				t.Errorf("next page %d overflowed", q.Page+1)
			}
		})
	}
}

func TestTotalPages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		total, limit, want int
	}{
		{120, 50, 3},
		{100, 50, 2},
		{101, 50, 3},
		{1, 50, 1},
		{0, 50, 1},
		{-1, 50, 1},
		{10, 0, 1},
		{math.MaxInt, 1, math.MaxInt},
		{math.MaxInt, 50, math.MaxInt/50 + 1},
	}

	for _, tt := range tests {
		if got := totalPages(tt.total, tt.limit); got != tt.want {
			t.Errorf("totalPages(%d, %d) = %d, want %d", tt.total, tt.limit, got, tt.want)
		}
	}
}

func TestPageInfoLinks(t *testing.T) {
	t.Parallel()

	first := newPageInfo(pageQuery{Page: 1, Limit: 50}, 120, true)
	if first.HasPrev() || !first.HasNext() {
		t.Errorf("first page: HasPrev=%v HasNext=%v", first.HasPrev(), first.HasNext())
	}

	last := newPageInfo(pageQuery{Page: 3, Limit: 50}, 120, false)
	if !last.HasPrev() || last.HasNext() {
		t.Errorf("last page: HasPrev=%v HasNext=%v", last.HasPrev(), last.HasNext())
	}
	if last.Offset != 100 || last.TotalPages != 3 {
		t.Errorf("last page = %+v", last)
	}

	// has_more from the backend keeps the next link even when total is unknown.
	unknown := newPageInfo(pageQuery{Page: 1, Limit: 50}, 0, true)
	if !unknown.HasNext() {
		t.Error("HasNext() should follow has_more")
	}
}
