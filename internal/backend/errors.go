// Backoffice - Admin Console for the Games API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/backoffice

package backend

import (
	"errors"
	"fmt"
	"net/http"
)

// Failure categories of a backend call. Every error returned by
// Client.Request is a *RequestError wrapping exactly one of these.
var (
	ErrUnsupportedMethod = errors.New("unsupported method")
	ErrTransport         = errors.New("backend unreachable")
	ErrStatus            = errors.New("backend returned an error status")
	ErrDecode            = errors.New("backend returned a non-JSON body")
	ErrCircuitOpen       = errors.New("backend circuit breaker is open")
	ErrResponseTooLarge  = errors.New("backend response too large")
)

// ErrNotFound is returned by the single-record helpers when the backend
// answers successfully with null or an empty object.
var ErrNotFound = errors.New("record not found")

// RequestError describes a failed backend call.
type RequestError struct {
	Method string
	Path   string
	// StatusCode is set for ErrStatus, zero otherwise.
	StatusCode int
	// Body holds the start of the error response body for ErrStatus.
	Body string
	// Kind is one of the Err* sentinels above.
	Kind error
	// Cause is the underlying transport or decode error, if any.
	Cause error
}

func (e *RequestError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
	case e.Cause != nil:
		return fmt.Sprintf("%s %s: %v: %v", e.Method, e.Path, e.Kind, e.Cause)
	default:
		return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Kind)
	}
}

// Unwrap exposes both the category sentinel and the cause to errors.Is/As.
func (e *RequestError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

// StatusCode returns the HTTP status of a failed call, or 0 when the call
// never produced a response.
func StatusCode(err error) int {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.StatusCode
	}
	return 0
}

// IsNotFound reports whether the backend answered 404.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// metricStatus maps an error to the status label of the backend metrics.
func metricStatus(err error) string {
	switch {
	case errors.Is(err, ErrTransport):
		return "transport_error"
	case errors.Is(err, ErrDecode):
		return "decode_error"
	case errors.Is(err, ErrCircuitOpen):
		return "circuit_open"
	case errors.Is(err, ErrResponseTooLarge):
		return "response_too_large"
	default:
		return ""
	}
}
