// Backoffice - Admin Console for the Games API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/backoffice

// Package backend is the single gateway from the console to the games API.
//
// Every outbound call goes through Client.Request, which attaches the
// bearer token, encodes the JSON body, and normalizes the outcome: a parsed
// JSON value on success (an empty object when the body is empty), or a
// *RequestError describing a transport failure, an HTTP error status or a
// non-JSON body. Nothing is cached; every call hits the backend.
package backend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/backoffice/internal/config"
	"github.com/tomtom215/backoffice/internal/logging"
	"github.com/tomtom215/backoffice/internal/metrics"
)

const (
	// maxResponseBytes bounds a single response body. The map view pulls up
	// to 10000 games per listing, so this is generous.
	maxResponseBytes = 64 << 20

	// maxErrorBodyBytes is how much of an error body is kept on RequestError.
	maxErrorBodyBytes = 512

	requestIDHeader = "X-Request-ID"
)

var emptyObject = json.RawMessage("{}")

// Client issues requests to the games API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	cb         *gobreaker.CircuitBreaker[json.RawMessage]
	cbName     string
	maxBody    int64
}

// NewClient creates a client for the configured backend. The HTTP client
// timeout is cfg.Timeout (zero means none) and connection pooling is the
// net/http default. A circuit breaker is installed only when enabled.
func NewClient(cfg *config.BackendConfig) *Client {
	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		maxBody: maxResponseBytes,
	}
	if cfg.CircuitBreaker.Enabled {
		c.cbName = "games-api"
		c.cb = newCircuitBreaker(c.cbName, &cfg.CircuitBreaker)
	}
	return c
}

// BaseURL returns the normalized backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Request performs one call to the games API.
//
// method must be GET, POST, PUT or DELETE. body is JSON-encoded and sent only
// for POST and PUT; a json.RawMessage is forwarded verbatim. query is
// appended to the URL when non-empty.
//
// On success the response body is returned unmodified, or {} when empty.
// Every failure is a *RequestError; callers decide the fallback.
func (c *Client) Request(ctx context.Context, method, path string, body any, query url.Values) (json.RawMessage, error) {
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
	default:
		return nil, &RequestError{Method: method, Path: path, Kind: ErrUnsupportedMethod}
	}

	start := time.Now()
	var (
		raw json.RawMessage
		err error
	)
	if c.cb != nil {
		raw, err = c.executeWithBreaker(func() (json.RawMessage, error) {
			return c.do(ctx, method, path, body, query)
		})
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			err = &RequestError{Method: method, Path: path, Kind: ErrCircuitOpen, Cause: err}
		}
	} else {
		raw, err = c.do(ctx, method, path, body, query)
	}

	metrics.RecordBackendRequest(method, endpointLabel(path), StatusCode(err), statusLabel(err), time.Since(start))

	if err != nil {
		logging.Ctx(ctx).Warn().
			Err(err).
			Str("method", method).
			Str("path", path).
			Int("status", StatusCode(err)).
			Msg("Backend request failed")
		return nil, err
	}

	logging.Ctx(ctx).Debug().
		Str("method", method).
		Str("path", path).
		Int("bytes", len(raw)).
		Dur("duration", time.Since(start)).
		Msg("Backend request completed")
	return raw, nil
}

// do performs the HTTP exchange without breaker or metrics.
func (c *Client) do(ctx context.Context, method, path string, body any, query url.Values) (json.RawMessage, error) {
	fail := func(kind, cause error) *RequestError {
		return &RequestError{Method: method, Path: path, Kind: kind, Cause: cause}
	}

	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	reqBody := io.Reader(http.NoBody)
	if body != nil && (method == http.MethodPost || method == http.MethodPut) {
		payload, err := encodeBody(body)
		if err != nil {
			return nil, fail(ErrTransport, fmt.Errorf("failed to encode request body: %w", err))
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return nil, fail(ErrTransport, fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if requestID := logging.RequestIDFromContext(ctx); requestID != "" {
		req.Header.Set(requestIDHeader, requestID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fail(ErrTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	// One byte past the limit tells an oversized body from one that fits.
	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, fail(ErrTransport, fmt.Errorf("failed to read response body: %w", err))
	}
	if int64(len(data)) > c.maxBody {
		return nil, fail(ErrResponseTooLarge, fmt.Errorf("limit is %d bytes", c.maxBody))
	}

	if resp.StatusCode >= http.StatusBadRequest {
		snippet := data
		if len(snippet) > maxErrorBodyBytes {
			snippet = snippet[:maxErrorBodyBytes]
		}
		return nil, &RequestError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       string(snippet),
			Kind:       ErrStatus,
		}
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return emptyObject, nil
	}
	if !json.Valid(data) {
		return nil, fail(ErrDecode, fmt.Errorf("content-type %q", resp.Header.Get("Content-Type")))
	}
	return json.RawMessage(data), nil
}

// encodeBody returns the JSON payload for a request body.
func encodeBody(body any) ([]byte, error) {
	switch b := body.(type) {
	case json.RawMessage:
		if !json.Valid(b) {
			return nil, fmt.Errorf("raw body is not valid JSON")
		}
		return b, nil
	default:
		return json.Marshal(body)
	}
}

// statusLabel is the metrics status for err; empty means "use the code".
func statusLabel(err error) string {
	if err == nil {
		return ""
	}
	return metricStatus(err)
}

// endpointLabel replaces resource IDs with {id} so metric labels stay bounded.
func endpointLabel(path string) string {
	for _, collection := range []string{messagesPath, candidatesPath} {
		if strings.HasPrefix(path, collection+"/") {
			return collection + "/{id}"
		}
	}
	return path
}
