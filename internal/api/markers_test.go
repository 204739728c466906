// Backoffice - Admin Console for the Games API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/backoffice

package api

import (
	"context"
	"testing"

	"github.com/tomtom215/backoffice/internal/backend"
)

func TestParseGeolocation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		wantOK  bool
		wantLat float64
		wantLng float64
	}{
		{"40.7,-74.0", true, 40.7, -74.0},
		{" 40.7 , -74.0 ", true, 40.7, -74.0},
		{"0,0", true, 0, 0},
		{"-90,180", true, -90, 180},
		{"not,valid", false, 0, 0},
		{"40.7", false, 0, 0},
		{"40.7,-74.0,12", false, 0, 0},
		{"", false, 0, 0},
		{",", false, 0, 0},
		{"91,0", false, 0, 0},
		{"0,181", false, 0, 0},
		{"NaN,0", false, 0, 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			c, ok := parseGeolocation(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("parseGeolocation(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && (c.Lat != tt.wantLat || c.Lng != tt.wantLng) {
				t.Errorf("parseGeolocation(%q) = %+v, want %v,%v", tt.input, c, tt.wantLat, tt.wantLng)
			}
		})
	}
}

func TestBuildMarkers(t *testing.T) {
	t.Parallel()

	games := []backend.Record{
		{"id": "g1", "fund_name": "Alpha", "geolocation": "40.7,-74.0", "time_started": "2026-03-01"},
		{"id": "g2", "geolocation": "not,valid"},
		{"id": "g3", "geolocation": nil},
		{"id": "g4"},
		{"id": "g5", "geolocation": 12.5},
		{"id": "g6", "fund_name": "Beta", "geolocation": "1.5,2.5"},
	}

	markers := BuildMarkers(context.Background(), games, backend.GamesHistorical)
	if len(markers) != 2 {
		t.Fatalf("got %d markers, want 2: %+v", len(markers), markers)
	}

	m := markers[0]
	if m.ID != "g1" || m.FundName != "Alpha" || m.Status != "historical" || m.TimeStarted != "2026-03-01" {
		t.Errorf("markers[0] = %+v", m)
	}
	if m.Lat != 40.7 || m.Lng != -74.0 {
		t.Errorf("markers[0] position = %v,%v", m.Lat, m.Lng)
	}
	if m.TimeEnded != nil || m.TotalPnl != nil {
		t.Errorf("absent fields should be nil, got %+v", m)
	}
	if markers[1].ID != "g6" {
		t.Errorf("markers[1].ID = %v, want g6", markers[1].ID)
	}
}

func TestBuildMarkersEmpty(t *testing.T) {
	t.Parallel()
	markers := BuildMarkers(context.Background(), nil, backend.GamesInProgress)
	if markers == nil || len(markers) != 0 {
		t.Errorf("BuildMarkers(nil) = %#v, want empty non-nil slice", markers)
	}
}
