// Backoffice - Admin Console for the Games API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/backoffice

package api

import (
	"context"
	"strconv"
	"strings"

	"github.com/tomtom215/backoffice/internal/backend"
	"github.com/tomtom215/backoffice/internal/logging"
	"github.com/tomtom215/backoffice/internal/metrics"
	"github.com/tomtom215/backoffice/internal/validation"
)

// Marker is one geolocated game on the map.
type Marker struct {
	Lat         float64     `json:"lat"`
	Lng         float64     `json:"lng"`
	ID          interface{} `json:"id"`
	FundName    interface{} `json:"fund_name"`
	Status      string      `json:"status"`
	TimeStarted interface{} `json:"time_started"`
	TimeEnded   interface{} `json:"time_ended"`
	TotalPnl    interface{} `json:"total_pnl"`
}

// coordinates is a parsed geolocation, range-checked by the validator.
type coordinates struct {
	Lat float64 `validate:"latitude"`
	Lng float64 `validate:"longitude"`
}

// parseGeolocation parses "<lat>,<lng>". It requires exactly two parts, each
// a float after trimming whitespace, inside the valid coordinate ranges.
func parseGeolocation(s string) (coordinates, bool) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return coordinates{}, false
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return coordinates{}, false
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return coordinates{}, false
	}

	c := coordinates{Lat: lat, Lng: lng}
	if err := validation.ValidateStruct(&c); err != nil {
		return coordinates{}, false
	}
	return c, true
}

// BuildMarkers turns games into map markers tagged with status. Games with
// a missing, null, non-string or malformed geolocation are skipped; one bad
// record never affects the others.
func BuildMarkers(ctx context.Context, games []backend.Record, status string) []Marker {
	markers := make([]Marker, 0, len(games))
	skipped := 0

	for _, game := range games {
		geo, ok := game["geolocation"].(string)
		if !ok {
			skipped++
			continue
		}
		c, ok := parseGeolocation(geo)
		if !ok {
			skipped++
			logging.Ctx(ctx).Debug().
				Str("id", game.ID()).
				Str("geolocation", sanitizeLogValue(geo)).
				Msg("Skipping game with malformed geolocation")
			continue
		}

		markers = append(markers, Marker{
			Lat:         c.Lat,
			Lng:         c.Lng,
			ID:          game["id"],
			FundName:    game["fund_name"],
			Status:      status,
			TimeStarted: game["time_started"],
			TimeEnded:   game["time_ended"],
			TotalPnl:    game["total_pnl"],
		})
	}

	metrics.RecordSkippedMarkers(skipped)
	return markers
}
