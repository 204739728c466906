// Backoffice - Admin Console for the Games API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/backoffice

package api

import (
	"io"
	"net/http"
	"sync"
	"testing"

	"github.com/goccy/go-json"
)

func TestGamesPagination(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		path       string
		wantQuery  string
		wantHeader string
		wantPrev   string
		wantNext   string
	}{
		{
			name:       "explicit page",
			path:       "/games/in-progress?page=3&limit=50",
			wantQuery:  "limit=50&offset=100",
			wantHeader: "120 games · page 3 of 3",
			wantPrev:   `href="?page=2&amp;limit=50"`,
		},
		{
			name:       "defaults",
			path:       "/games/historical",
			wantQuery:  "limit=50&offset=0",
			wantHeader: "120 games · page 1 of 3",
			wantNext:   `href="?page=2&amp;limit=50"`,
		},
		{
			name:       "invalid values fall back",
			path:       "/games/in-progress?page=abc&limit=-5",
			wantQuery:  "limit=50&offset=0",
			wantHeader: "page 1 of 3",
		},
		{
			name:       "limit capped",
			path:       "/games/in-progress?page=1&limit=100000",
			wantQuery:  "limit=500&offset=0",
			wantHeader: "120 games · page 1 of 1",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var mu sync.Mutex
			var gotQuery string
			env := newConsoleEnv(t, func(w http.ResponseWriter, r *http.Request) {
				mu.Lock()
				gotQuery = r.URL.RawQuery
				mu.Unlock()
				_, _ = io.WriteString(w, `{"games":[{"id":1,"fund_name":"Alpha","geolocation":"40.7,-74.0"}],"total":120,"has_more":false}`)
			})
			env.login()

			status, _, body := env.get(tt.path)
			if status != http.StatusOK {
				t.Fatalf("status = %d", status)
			}
			mu.Lock()
			if gotQuery != tt.wantQuery {
				t.Errorf("backend query = %q, want %q", gotQuery, tt.wantQuery)
			}
			mu.Unlock()
			assertContains(t, body, tt.wantHeader)
			assertContains(t, body, "Alpha")
			if tt.wantPrev != "" {
				assertContains(t, body, tt.wantPrev)
			}
			if tt.wantNext != "" {
				assertContains(t, body, tt.wantNext)
			}
		})
	}
}

func TestGamesBackendPaths(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var paths []string
	env := newConsoleEnv(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.Path)
		mu.Unlock()
		_, _ = io.WriteString(w, `{"games":[],"total":0,"has_more":false}`)
	})
	env.login()

	env.get("/games/in-progress")
	env.get("/games/historical")

	mu.Lock()
	defer mu.Unlock()
	want := []string{"/api/games/in-progress", "/api/games/historical"}
	if len(paths) != len(want) {
		t.Fatalf("backend paths = %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("backend paths[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
}

func TestGamesFailureRendersEmptyPage(t *testing.T) {
	t.Parallel()
	env := newConsoleEnv(t, jsonResponse(http.StatusBadGateway, `{}`))
	env.login()

	status, _, body := env.get("/games/historical?page=4")
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	assertContains(t, body, "0 games · page 4 of 1")
	assertContains(t, body, "No games.")
	assertContains(t, body, "API Error: ")
}

// mapBackend serves two geolocated games in progress, one malformed and
// one without a location, plus one historical game.
func mapBackend(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if q := r.URL.RawQuery; q != "limit=10000&offset=0" {
			t.Errorf("map query = %q, want limit=10000&offset=0", q)
		}
		switch r.URL.Path {
		case "/api/games/in-progress":
			_, _ = io.WriteString(w, `{"games":[
				{"id":1,"fund_name":"Alpha","geolocation":"40.7,-74.0","total_pnl":12.5},
				{"id":2,"fund_name":"Beta","geolocation":"not,valid"},
				{"id":3,"fund_name":"Gamma","geolocation":null},
				{"id":4,"fund_name":"Delta"},
				{"id":5,"fund_name":"Eps","geolocation":"-33.9, 151.2"}
			],"total":5,"has_more":false}`)
		case "/api/games/historical":
			_, _ = io.WriteString(w, `{"games":[
				{"id":6,"fund_name":"Zeta","geolocation":" 51.5 , -0.12 ","time_ended":"2026-01-01T00:00:00Z"}
			],"total":1,"has_more":false}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func TestGamesMarkers(t *testing.T) {
	t.Parallel()
	env := newConsoleEnv(t, mapBackend(t))
	env.login()

	status, _, body := env.get("/games/map/markers.json")
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}

	var markers []Marker
	if err := json.Unmarshal([]byte(body), &markers); err != nil {
		t.Fatalf("decode markers: %v\nbody: %s", err, body)
	}
	if len(markers) != 3 {
		t.Fatalf("got %d markers, want 3: %s", len(markers), body)
	}

	wantStatus := []string{"in-progress", "in-progress", "historical"}
	wantLat := []float64{40.7, -33.9, 51.5}
	for i, m := range markers {
		if m.Status != wantStatus[i] {
			t.Errorf("markers[%d].Status = %q, want %q", i, m.Status, wantStatus[i])
		}
		if m.Lat != wantLat[i] {
			t.Errorf("markers[%d].Lat = %v, want %v", i, m.Lat, wantLat[i])
		}
	}
	if markers[0].FundName != "Alpha" || markers[0].TotalPnl == nil {
		t.Errorf("markers[0] = %+v", markers[0])
	}
	if markers[2].TimeEnded != "2026-01-01T00:00:00Z" {
		t.Errorf("markers[2].TimeEnded = %v", markers[2].TimeEnded)
	}
}

func TestGamesMarkersPartialFailure(t *testing.T) {
	t.Parallel()
	env := newConsoleEnv(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/games/historical" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = io.WriteString(w, `{"games":[{"id":1,"geolocation":"10,20"}],"total":1,"has_more":false}`)
	})
	env.login()

	status, _, body := env.get("/games/map/markers.json")
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	var markers []Marker
	if err := json.Unmarshal([]byte(body), &markers); err != nil {
		t.Fatalf("decode markers: %v", err)
	}
	if len(markers) != 1 || markers[0].Status != "in-progress" {
		t.Errorf("markers = %+v, want the single in-progress marker", markers)
	}

	// The JSON endpoint never flashes.
	_, _, page := env.get("/")
	assertNotContains(t, page, "API Error")
}

func TestGamesMap(t *testing.T) {
	t.Parallel()
	env := newConsoleEnv(t, mapBackend(t))
	env.login()

	status, _, body := env.get("/games/map")
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	assertContains(t, body, "3 geolocated games")
	assertContains(t, body, "const markers = ")
	assertNotContains(t, body, "API Error")
}
