// Backoffice - Admin Console for the Games API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/backoffice

package auth

import (
	"crypto/subtle"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/httprate"

	"github.com/tomtom215/backoffice/internal/logging"
	"github.com/tomtom215/backoffice/internal/metrics"
)

// LoginPath is where unauthenticated requests are sent.
const LoginPath = "/login"

// RequireLogin redirects requests without an authenticated session to the
// login page, remembering where they were going.
func (s *Sessions) RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.LoggedIn(r) {
			target := LoginPath + "?next=" + url.QueryEscape(r.URL.RequestURI())
			http.Redirect(w, r, target, http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SafeNext returns next when it is a local absolute path, "/" otherwise.
func SafeNext(next string) string {
	if !strings.HasPrefix(next, "/") {
		return "/"
	}
	// Browsers treat "//host" and "/\host" as network paths.
	if strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "/"
	}
	return next
}

// CheckPassword compares the submitted password with the configured one in
// constant time. Equality is exact; no trimming or case folding.
func CheckPassword(submitted, expected string) bool {
	return subtle.ConstantTimeCompare([]byte(submitted), []byte(expected)) == 1
}

// LoginRateLimit limits password attempts per client IP. A limit of zero
// disables it.
func LoginRateLimit(limit int, window time.Duration) func(http.Handler) http.Handler {
	if limit <= 0 {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	return httprate.Limit(
		limit,
		window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			metrics.RecordLoginAttempt("rate_limited")
			logging.Ctx(r.Context()).Warn().Str("remote_addr", r.RemoteAddr).Msg("Login rate limit exceeded")
			http.Error(w, "Too many login attempts, try again later", http.StatusTooManyRequests)
		}),
	)
}
