// Backoffice - Admin Console for the Games API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/backoffice

// Package metrics holds the Prometheus collectors for the console:
// inbound page requests, outbound calls to the games API, the optional
// backend circuit breaker and login outcomes.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Console (inbound) request metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backoffice_http_requests_total",
			Help: "Total number of console HTTP requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "backoffice_http_request_duration_seconds",
			Help:    "Console HTTP request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "backoffice_http_active_requests",
			Help: "Current number of in-flight console HTTP requests",
		},
	)

	// Backend (outbound) request metrics
	BackendRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backoffice_backend_requests_total",
			Help: "Total number of requests sent to the games API",
		},
		[]string{"method", "endpoint", "status"}, // status: HTTP code, "transport_error", "decode_error", "circuit_open"
	)

	BackendRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "backoffice_backend_request_duration_seconds",
			Help:    "Games API request duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "endpoint"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "backoffice_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backoffice_circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "backoffice_circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backoffice_circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Authentication
	LoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backoffice_login_attempts_total",
			Help: "Total number of console login attempts",
		},
		[]string{"result"}, // "success", "failure", "rate_limited"
	)

	// Map view
	MapMarkersSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "backoffice_map_markers_skipped_total",
			Help: "Games skipped while building map markers because of missing or malformed geolocation",
		},
	)
)

// RecordAPIRequest records a console request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the in-flight console request gauge
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordBackendRequest records one outbound games API call. statusCode is
// used when status is empty.
func RecordBackendRequest(method, endpoint string, statusCode int, status string, duration time.Duration) {
	if status == "" {
		status = strconv.Itoa(statusCode)
	}
	BackendRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	BackendRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordLoginAttempt records the outcome of a login attempt
func RecordLoginAttempt(result string) {
	LoginAttempts.WithLabelValues(result).Inc()
}

// RecordSkippedMarkers adds n skipped geolocation records
func RecordSkippedMarkers(n int) {
	if n > 0 {
		MapMarkersSkipped.Add(float64(n))
	}
}
