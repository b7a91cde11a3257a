// Roommatch - Roommate Compatibility Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roommatch

package logging

import "testing"

func TestRedactPhone(t *testing.T) {
	t.Parallel()

	tests := []struct{ in, want string }{
		{"03001234567", "0300*****67"},
		{"12345", "***"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := RedactPhone(tt.in); got != tt.want {
			t.Errorf("RedactPhone(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRedactEmail(t *testing.T) {
	t.Parallel()

	tests := []struct{ in, want string }{
		{"ayesha@example.com", "ay***@example.com"},
		{"ab@example.com", "***@example.com"},
		{"no-at-sign", "***"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := RedactEmail(tt.in); got != tt.want {
			t.Errorf("RedactEmail(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRedactToken(t *testing.T) {
	t.Parallel()

	tests := []struct{ in, want string }{
		{"s3cr3t-admin-token-value", "s3cr...alue"},
		{"short", "***"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := RedactToken(tt.in); got != tt.want {
			t.Errorf("RedactToken(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
