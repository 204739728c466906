// Backoffice - Admin Console for the Games API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/backoffice

package api

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tomtom215/backoffice/internal/auth"
	"github.com/tomtom215/backoffice/internal/backend"
	"github.com/tomtom215/backoffice/internal/config"
)

const (
	testPassword = "hunter2"
	testToken    = "test-token-1234"
)

// consoleEnv is a console server wired to a fake games API.
type consoleEnv struct {
	t           *testing.T
	backend     *httptest.Server
	console     *httptest.Server
	client      *http.Client
	config      *config.Config
	backendHits atomic.Int64
}

func newTestConfig(baseURL string) *config.Config {
	return &config.Config{
		Backend: config.BackendConfig{BaseURL: baseURL, Token: testToken},
		Session: config.SessionConfig{Secret: "test-session-secret", CookieName: "backoffice_session"},
		Security: config.SecurityConfig{
			AdminPassword:  testPassword,
			LoginRateLimit: 10,
			LoginWindow:    time.Minute,
		},
		API:     config.APIConfig{DefaultPageSize: 50, MaxPageSize: 500},
		Games:   config.GamesConfig{MapLimit: 10000},
		Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}
}

// newConsoleEnv starts a fake backend serving backendHandler and a console
// in front of it. The returned client keeps cookies and does not follow
// redirects.
func newConsoleEnv(t *testing.T, backendHandler http.HandlerFunc) *consoleEnv {
	t.Helper()

	env := &consoleEnv{t: t}
	env.backend = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		env.backendHits.Add(1)
		if got := r.Header.Get("Authorization"); got != "Bearer "+testToken {
			t.Errorf("backend Authorization = %q", got)
		}
		backendHandler(w, r)
	}))
	t.Cleanup(env.backend.Close)

	env.config = newTestConfig(env.backend.URL)
	sessions, err := auth.NewSessions(&env.config.Session)
	if err != nil {
		t.Fatalf("NewSessions() error = %v", err)
	}
	handler, err := NewHandler(env.config, backend.NewClient(&env.config.Backend), sessions)
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}
	env.console = httptest.NewServer(NewRouter(env.config, handler, sessions).SetupChi())
	t.Cleanup(env.console.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar.New() error = %v", err)
	}
	env.client = &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return env
}

// do performs a request against the console and returns status, Location
// and body.
func (env *consoleEnv) do(method, path, contentType, body string) (int, string, string) {
	env.t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, env.console.URL+path, reader)
	if err != nil {
		env.t.Fatalf("NewRequest() error = %v", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := env.client.Do(req)
	if err != nil {
		env.t.Fatalf("%s %s error = %v", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		env.t.Fatalf("read body error = %v", err)
	}
	return resp.StatusCode, resp.Header.Get("Location"), string(data)
}

func (env *consoleEnv) get(path string) (int, string, string) {
	env.t.Helper()
	return env.do(http.MethodGet, path, "", "")
}

func (env *consoleEnv) postJSON(path, body string) (int, string, string) {
	env.t.Helper()
	return env.do(http.MethodPost, path, "application/json", body)
}

func (env *consoleEnv) postForm(path string, form url.Values) (int, string, string) {
	env.t.Helper()
	return env.do(http.MethodPost, path, "application/x-www-form-urlencoded", form.Encode())
}

// login authenticates the env's client.
func (env *consoleEnv) login() {
	env.t.Helper()
	status, location, _ := env.postForm("/login", url.Values{"password": {testPassword}})
	if status != http.StatusFound || location != "/" {
		env.t.Fatalf("login: status = %d, Location = %q", status, location)
	}
	// Consume the login flash so later pages only show their own messages.
	env.get("/")
}

func assertContains(t *testing.T, body, want string) {
	t.Helper()
	if !strings.Contains(body, want) {
		t.Errorf("body does not contain %q\nbody: %s", want, body)
	}
}

func assertNotContains(t *testing.T, body, unwanted string) {
	t.Helper()
	if strings.Contains(body, unwanted) {
		t.Errorf("body unexpectedly contains %q", unwanted)
	}
}

// jsonResponse returns a backend handler answering every request with body.
func jsonResponse(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}
