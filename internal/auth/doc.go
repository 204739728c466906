// Backoffice - Admin Console for the Games API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/backoffice

/*
Package auth guards the console behind a single shared admin password.

Authentication state lives entirely in a client-held cookie. The cookie is
signed and encrypted by gorilla/sessions with keys derived from the
configured session secret. It carries the logged_in flag set by a successful
password check, plus one-shot flash messages consumed by the next rendered
page.

There is no server-side session state and no user identity: a
request is either logged in or it is not.

# Middleware

RequireLogin redirects unauthenticated requests to the login page, carrying
the original request URI in the next query parameter. After login the user
is sent back there through SafeNext, which only accepts local paths.

LoginRateLimit throttles password attempts per client IP with go-chi/httprate.

# Saving

Session mutations (Login, Logout, AddFlash, Flashes) act on the per-request
session and are written out by Save. Handlers call Save once, before writing
the response, so a response never carries more than one session cookie.
*/
package auth
