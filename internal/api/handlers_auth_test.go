// Backoffice - Admin Console for the Games API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/backoffice

package api

import (
	"net/http"
	"net/url"
	"testing"
)

func TestProtectedRoutesRedirectToLogin(t *testing.T) {
	t.Parallel()
	env := newConsoleEnv(t, jsonResponse(http.StatusOK, `[]`))

	paths := []string{
		"/",
		"/messages",
		"/messages/new",
		"/messages/42",
		"/messages/42/edit",
		"/candidates",
		"/candidates/new",
		"/candidates/7/edit",
		"/games/in-progress?page=2&limit=10",
		"/games/historical",
		"/games/map",
		"/games/map/markers.json",
	}

	for _, path := range paths {
		status, location, _ := env.get(path)
		if status != http.StatusFound {
			t.Errorf("GET %s: status = %d, want 302", path, status)
			continue
		}
		want := "/login?next=" + url.QueryEscape(path)
		if location != want {
			t.Errorf("GET %s: Location = %q, want %q", path, location, want)
		}
	}

	for _, path := range []string{"/messages/new", "/messages/1/delete", "/candidates/1/edit"} {
		status, location, _ := env.postJSON(path, `{}`)
		if status != http.StatusFound || location != "/login?next="+url.QueryEscape(path) {
			t.Errorf("POST %s: status = %d, Location = %q", path, status, location)
		}
	}

	if hits := env.backendHits.Load(); hits != 0 {
		t.Errorf("backend called %d times by unauthenticated requests", hits)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	t.Parallel()
	env := newConsoleEnv(t, jsonResponse(http.StatusOK, `[]`))

	for _, password := range []string{"", "Hunter2", "hunter2 ", "hunter", "wrong"} {
		status, _, body := env.postForm("/login", url.Values{"password": {password}})
		if status != http.StatusOK {
			t.Errorf("password %q: status = %d, want 200", password, status)
		}
		assertContains(t, body, "Invalid password")
		assertContains(t, body, `name="password"`)

		status, location, _ := env.get("/")
		if status != http.StatusFound || location != "/login?next=%2F" {
			t.Errorf("password %q: session should stay unauthenticated, got %d %q", password, status, location)
		}
	}
}

func TestLoginSuccess(t *testing.T) {
	t.Parallel()
	env := newConsoleEnv(t, jsonResponse(http.StatusOK, `[]`))

	status, location, _ := env.postForm("/login?next="+url.QueryEscape("/games/map"), url.Values{"password": {testPassword}})
	if status != http.StatusFound || location != "/games/map" {
		t.Fatalf("status = %d, Location = %q, want 302 /games/map", status, location)
	}

	status, _, body := env.get("/")
	if status != http.StatusOK {
		t.Fatalf("dashboard status = %d", status)
	}
	assertContains(t, body, "Login successful")
	assertContains(t, body, env.backend.URL)
	assertContains(t, body, "****1234")
	assertNotContains(t, body, testToken)

	// Flash is shown once
	_, _, body = env.get("/")
	assertNotContains(t, body, "Login successful")
}

func TestLoginRejectsOffsiteNext(t *testing.T) {
	t.Parallel()
	env := newConsoleEnv(t, jsonResponse(http.StatusOK, `[]`))

	status, location, _ := env.postForm("/login?next="+url.QueryEscape("//evil.example.com/"), url.Values{"password": {testPassword}})
	if status != http.StatusFound || location != "/" {
		t.Errorf("status = %d, Location = %q, want 302 /", status, location)
	}
}

func TestLoginPageWhenLoggedIn(t *testing.T) {
	t.Parallel()
	env := newConsoleEnv(t, jsonResponse(http.StatusOK, `[]`))
	env.login()

	status, location, _ := env.get("/login")
	if status != http.StatusFound || location != "/" {
		t.Errorf("status = %d, Location = %q, want 302 /", status, location)
	}
}

func TestLoginFormKeepsNext(t *testing.T) {
	t.Parallel()
	env := newConsoleEnv(t, jsonResponse(http.StatusOK, `[]`))

	status, _, body := env.get("/login?next=" + url.QueryEscape("/candidates"))
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	assertContains(t, body, `action="/login?next=%2fcandidates"`)
}

func TestLogout(t *testing.T) {
	t.Parallel()
	env := newConsoleEnv(t, jsonResponse(http.StatusOK, `[]`))
	env.login()

	status, location, _ := env.get("/logout")
	if status != http.StatusFound || location != "/login" {
		t.Fatalf("status = %d, Location = %q, want 302 /login", status, location)
	}

	_, _, body := env.get("/login")
	assertContains(t, body, "You have been logged out")

	status, _, _ = env.get("/messages")
	if status != http.StatusFound {
		t.Errorf("after logout /messages status = %d, want 302", status)
	}
}

func TestLoginRateLimited(t *testing.T) {
	t.Parallel()
	env := newConsoleEnv(t, jsonResponse(http.StatusOK, `[]`))

	var last int
	for i := 0; i < env.config.Security.LoginRateLimit+1; i++ {
		last, _, _ = env.postForm("/login", url.Values{"password": {"nope"}})
	}
	if last != http.StatusTooManyRequests {
		t.Errorf("status after limit = %d, want 429", last)
	}

	// GET is not limited
	if status, _, _ := env.get("/login"); status != http.StatusOK {
		t.Errorf("GET /login status = %d, want 200", status)
	}
}

func TestHealthAndMetricsArePublic(t *testing.T) {
	t.Parallel()
	env := newConsoleEnv(t, jsonResponse(http.StatusOK, `[]`))

	status, _, body := env.get("/health")
	if status != http.StatusOK || body != `{"status":"ok"}` {
		t.Errorf("/health = %d %q", status, body)
	}

	status, _, body = env.get("/metrics")
	if status != http.StatusOK {
		t.Fatalf("/metrics status = %d", status)
	}
	assertContains(t, body, "backoffice_http_requests_total")
}

func TestSecurityHeaders(t *testing.T) {
	t.Parallel()
	env := newConsoleEnv(t, jsonResponse(http.StatusOK, `[]`))

	resp, err := env.client.Get(env.console.URL + "/login")
	if err != nil {
		t.Fatalf("GET /login error = %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	for header, want := range map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"Referrer-Policy":        "strict-origin-when-cross-origin",
	} {
		if got := resp.Header.Get(header); got != want {
			t.Errorf("%s = %q, want %q", header, got, want)
		}
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("X-Request-ID should be set")
	}
}
