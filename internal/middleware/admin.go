// Roommatch - Roommate Compatibility Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roommatch

package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/tomtom215/roommatch/internal/logging"
)

// AdminTokenHeader carries the operator token.
const AdminTokenHeader = "X-Admin-Token"

// AdminToken rejects requests whose X-Admin-Token does not match token.
// An empty token disables the check. onDenied writes the rejection.
func AdminToken(token string, onDenied http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if token == "" {
			return next
		}
		expected := []byte(token)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := []byte(r.Header.Get(AdminTokenHeader))
			if subtle.ConstantTimeCompare(got, expected) != 1 {
				logging.Ctx(r.Context()).Warn().
					Str("path", r.URL.Path).
					Str("token", logging.RedactToken(string(got))).
					Msg("Admin token rejected")
				onDenied(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
