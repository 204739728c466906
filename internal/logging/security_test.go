// Backoffice - Admin Console for the Games API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/backoffice

package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestSanitizeToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"short", "****"},
		{"12345678", "****"},
		{"change-me-in-production", "****tion"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := SanitizeToken(tt.input); got != tt.expected {
				t.Errorf("SanitizeToken(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSecurityLogger_LoginEvents(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := NewSecurityLoggerWithLogger(NewTestLogger(&buf))

	l.LogLoginSuccess("10.0.0.1", "curl/8.0")
	l.LogLoginFailure("10.0.0.2", strings.Repeat("x", 300), "invalid password")
	l.LogLogout("10.0.0.1")

	output := buf.String()
	for _, want := range []string{
		`"event":"login_success"`,
		`"event":"login_failed"`,
		`"reason":"invalid password"`,
		`"event":"logout"`,
		`"component":"auth"`,
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %s in output, got: %s", want, output)
		}
	}
	if strings.Contains(output, strings.Repeat("x", 150)) {
		t.Error("expected user agent to be truncated")
	}
}
