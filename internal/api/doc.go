// Backoffice - Admin Console for the Games API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/backoffice

/*
Package api serves the admin console: server-rendered HTML pages and a few
JSON endpoints, routed with chi.

Every data operation is forwarded to the games API through backend.Client.
The console keeps no state of its own beyond the session cookie managed by
package auth. Its only computation is pagination arithmetic for the games
listings and turning "lat,lng" geolocation strings into map markers.

# Routes

	GET       /login, POST /login     password form (POST is rate limited)
	GET       /logout
	GET       /                       dashboard
	GET       /messages               list
	GET, POST /messages/new           form, JSON create
	GET       /messages/{id}          view
	GET, POST /messages/{id}/edit     form, JSON update
	POST      /messages/{id}/delete
	GET       /candidates             list
	GET, POST /candidates/new
	GET, POST /candidates/{id}/edit
	POST      /candidates/{id}/delete
	GET       /games/in-progress      paginated (page, limit)
	GET       /games/historical       paginated (page, limit)
	GET       /games/map              Leaflet map of geolocated games
	GET       /games/map/markers.json
	GET       /health                 unauthenticated
	GET       /metrics                unauthenticated, optional

# Failure handling

A failed backend call never produces an error page. The handler flashes
"API Error: <detail>" and falls back: an empty list, a redirect with a
not-found flash, or a 400 JSON body with a generic message.
*/
package api
