// Backoffice - Admin Console for the Games API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/backoffice

package auth

import (
	"crypto/sha256"
	"encoding/gob"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/sessions"
	"golang.org/x/crypto/hkdf"

	"github.com/tomtom215/backoffice/internal/config"
	"github.com/tomtom215/backoffice/internal/logging"
)

// Flash categories understood by the layout template.
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

const (
	loggedInKey = "logged_in"

	// HKDF info strings; changing them invalidates every issued cookie.
	hashKeyInfo  = "backoffice session hash key"
	blockKeyInfo = "backoffice session block key"
)

// Flash is a one-time notification shown on the next rendered page.
type Flash struct {
	Category string
	Message  string
}

func init() {
	// Flash values are gob-encoded inside the session cookie.
	gob.Register(Flash{})
}

// Sessions manages the signed session cookie.
type Sessions struct {
	store *sessions.CookieStore
	name  string
}

// NewSessions creates the cookie store for cfg. Hash and block keys are
// derived from the secret, so any secret length works.
func NewSessions(cfg *config.SessionConfig) (*Sessions, error) {
	hashKey, err := deriveKey([]byte(cfg.Secret), hashKeyInfo, 64)
	if err != nil {
		return nil, fmt.Errorf("derive session hash key: %w", err)
	}
	blockKey, err := deriveKey([]byte(cfg.Secret), blockKeyInfo, 32)
	if err != nil {
		return nil, fmt.Errorf("derive session block key: %w", err)
	}

	store := sessions.NewCookieStore(hashKey, blockKey)
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if maxAge := int(cfg.MaxAge.Seconds()); maxAge > 0 {
		// Sets both the cookie attribute and the codec's timestamp check.
		store.MaxAge(maxAge)
	}

	return &Sessions{store: store, name: cfg.CookieName}, nil
}

// deriveKey derives a key using HKDF-SHA256.
func deriveKey(secret []byte, info string, keyLen int) ([]byte, error) {
	reader := hkdf.New(sha256.New, secret, nil, []byte(info))
	key := make([]byte, keyLen)
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, err
	}
	return key, nil
}

// session returns the request's session. A cookie that fails to decode
// (tampered, or signed with an older secret) yields a fresh session.
func (s *Sessions) session(r *http.Request) *sessions.Session {
	sess, err := s.store.Get(r, s.name)
	if err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Discarding undecodable session cookie")
	}
	return sess
}

// LoggedIn reports whether the request carries an authenticated session.
func (s *Sessions) LoggedIn(r *http.Request) bool {
	loggedIn, _ := s.session(r).Values[loggedInKey].(bool)
	return loggedIn
}

// Login marks the session as authenticated.
func (s *Sessions) Login(r *http.Request) {
	s.session(r).Values[loggedInKey] = true
}

// Logout clears every session value, pending flashes included.
func (s *Sessions) Logout(r *http.Request) {
	sess := s.session(r)
	for key := range sess.Values {
		delete(sess.Values, key)
	}
}

// AddFlash queues a message for the next rendered page.
func (s *Sessions) AddFlash(r *http.Request, category, message string) {
	s.session(r).AddFlash(Flash{Category: category, Message: message})
}

// Flashes consumes and returns the queued messages in insertion order.
func (s *Sessions) Flashes(r *http.Request) []Flash {
	values := s.session(r).Flashes()
	flashes := make([]Flash, 0, len(values))
	for _, v := range values {
		if f, ok := v.(Flash); ok {
			flashes = append(flashes, f)
		}
	}
	return flashes
}

// Save writes the session cookie. It must be called before the response
// header is written.
func (s *Sessions) Save(w http.ResponseWriter, r *http.Request) error {
	return s.session(r).Save(r, w)
}
