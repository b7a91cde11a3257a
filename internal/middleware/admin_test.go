// Roommatch - Roommate Compatibility Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roommatch

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAdminToken(t *testing.T) {
	denied := func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		configured string
		sent       string
		wantStatus int
	}{
		{name: "disabled when unset", configured: "", sent: "", wantStatus: http.StatusOK},
		{name: "matching token", configured: "s3cret-operator", sent: "s3cret-operator", wantStatus: http.StatusOK},
		{name: "missing token", configured: "s3cret-operator", sent: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong token", configured: "s3cret-operator", sent: "guess", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := AdminToken(tt.configured, denied)(ok)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/metrics", nil)
			if tt.sent != "" {
				req.Header.Set(AdminTokenHeader, tt.sent)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}
