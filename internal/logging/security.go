// Backoffice - Admin Console for the Games API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/backoffice

package logging

import (
	"github.com/rs/zerolog"
)

// SecurityLogger writes the audit trail for console logins and logouts.
// Passwords never reach it; only the outcome and client details are logged.
type SecurityLogger struct {
	logger zerolog.Logger
}

// NewSecurityLogger creates a security logger on the global logger.
func NewSecurityLogger() *SecurityLogger {
	return &SecurityLogger{logger: WithComponent("auth")}
}

// NewSecurityLoggerWithLogger creates a security logger with a custom zerolog logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewSecurityLoggerWithLogger(logger zerolog.Logger) *SecurityLogger {
	return &SecurityLogger{logger: logger.With().Str("component", "auth").Logger()}
}

// LogLoginSuccess logs a successful login.
func (l *SecurityLogger) LogLoginSuccess(ip, userAgent string) {
	l.logger.Info().
		Str("event", "login_success").
		Str("status", "success").
		Str("ip", ip).
		Str("user_agent", truncateString(userAgent, 100)).
		Msg("")
}

// LogLoginFailure logs a rejected login attempt.
func (l *SecurityLogger) LogLoginFailure(ip, userAgent, reason string) {
	l.logger.Warn().
		Str("event", "login_failed").
		Str("status", "failed").
		Str("ip", ip).
		Str("user_agent", truncateString(userAgent, 100)).
		Str("reason", reason).
		Msg("")
}

// LogLogout logs an explicit logout.
func (l *SecurityLogger) LogLogout(ip string) {
	l.logger.Info().
		Str("event", "logout").
		Str("status", "success").
		Str("ip", ip).
		Msg("")
}

// SanitizeToken masks a secret so only its last 4 characters remain.
// Secrets of 8 characters or fewer are fully masked.
//
//	SanitizeToken("change-me-in-production") // "****tion"
func SanitizeToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 8 {
		return "****"
	}
	return "****" + token[len(token)-4:]
}

// truncateString truncates a string to a maximum length.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
