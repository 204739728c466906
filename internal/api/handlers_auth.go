// Backoffice - Admin Console for the Games API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/backoffice

package api

import (
	"net/http"

	"github.com/tomtom215/backoffice/internal/auth"
	"github.com/tomtom215/backoffice/internal/metrics"
)

// Login serves the password form (GET) and checks a submitted password (POST).
//
// A correct password marks the session as logged in and redirects to the
// next query parameter when it is a local path, or to the dashboard. A wrong
// password re-renders the form with an error flash and leaves the session
// unauthenticated.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	next := r.URL.Query().Get("next")

	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid form body")
			return
		}

		if auth.CheckPassword(r.PostFormValue("password"), h.config.Security.AdminPassword) {
			h.sessions.Login(r)
			h.flash(r, auth.FlashSuccess, "Login successful")
			metrics.RecordLoginAttempt("success")
			h.security.LogLoginSuccess(clientIP(r), r.UserAgent())
			h.redirect(w, r, auth.SafeNext(next))
			return
		}

		h.flash(r, auth.FlashError, "Invalid password")
		metrics.RecordLoginAttempt("failure")
		h.security.LogLoginFailure(clientIP(r), r.UserAgent(), "invalid password")
	}

	if h.sessions.LoggedIn(r) {
		h.redirect(w, r, "/")
		return
	}

	h.render(w, r, http.StatusOK, "login", &view{Title: "Login", Next: next})
}

// Logout clears the session and returns to the login page.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Logout(r)
	h.flash(r, auth.FlashSuccess, "You have been logged out")
	h.security.LogLogout(clientIP(r))
	h.redirect(w, r, auth.LoginPath)
}
