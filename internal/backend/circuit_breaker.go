// Backoffice - Admin Console for the Games API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/backoffice

package backend

import (
	"errors"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/backoffice/internal/config"
	"github.com/tomtom215/backoffice/internal/logging"
	"github.com/tomtom215/backoffice/internal/metrics"
)

// newCircuitBreaker builds the optional breaker around backend calls.
//
// Only transport failures, 5xx responses and non-JSON bodies count as
// failures. A 4xx is the backend answering correctly (a missing message, a
// rejected payload) and must never open the circuit.
//
// The breaker uses real time for its interval and timeout; tests drive it
// through request counts rather than clocks.
func newCircuitBreaker(name string, cfg *config.CircuitBreakerConfig) *gobreaker.CircuitBreaker[json.RawMessage] {
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)

	minRequests := cfg.MinRequests
	failureRatio := cfg.FailureRatio

	return gobreaker.NewCircuitBreaker[json.RawMessage](gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < minRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := ratio >= failureRatio
			if shouldTrip {
				logging.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", ratio*100).
					Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},

		IsSuccessful: isBreakerSuccess,
	})
}

// isBreakerSuccess reports whether err should count as a success for the
// breaker's failure accounting.
func isBreakerSuccess(err error) bool {
	if err == nil {
		return true
	}
	code := StatusCode(err)
	return code >= 400 && code < 500
}

// executeWithBreaker runs fn through the breaker and records breaker metrics.
// Rejections are reported as ErrCircuitOpen.
func (c *Client) executeWithBreaker(fn func() (json.RawMessage, error)) (json.RawMessage, error) {
	result, err := c.cb.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(c.cbName, "rejected").Inc()
			logging.Warn().Err(err).Msg("[CIRCUIT BREAKER] Request rejected")
			return nil, err
		}
		if isBreakerSuccess(err) {
			metrics.CircuitBreakerRequests.WithLabelValues(c.cbName, "success").Inc()
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(c.cbName, "failure").Inc()
		}
		metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(c.cbName).Set(float64(c.cb.Counts().ConsecutiveFailures))
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(c.cbName, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(c.cbName).Set(0)
	return result, nil
}

// BreakerState returns the breaker state name, or "disabled".
func (c *Client) BreakerState() string {
	if c.cb == nil {
		return "disabled"
	}
	return stateToString(c.cb.State())
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to string for logging/metrics
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
