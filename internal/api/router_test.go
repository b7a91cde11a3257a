// Roommatch - Roommate Compatibility Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roommatch

package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/roommatch/internal/middleware"
	"github.com/tomtom215/roommatch/internal/models"
)

func TestHealth(t *testing.T) {
	tests := []struct {
		name       string
		pingErr    error
		wantStatus int
		wantHealth string
	}{
		{name: "healthy", wantStatus: http.StatusOK, wantHealth: "healthy"},
		{name: "database down", pingErr: errors.New("database is closed"), wantStatus: http.StatusServiceUnavailable, wantHealth: "degraded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := newTestDeps()
			deps.store.pingErr = tt.pingErr
			h := newTestServer(t, deps, "")

			rec, env := doRequest(t, h, http.MethodGet, "/api/v1/health", "", nil)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			var health models.HealthStatus
			decodeData(t, env, &health)
			if health.Status != tt.wantHealth {
				t.Errorf("health = %q, want %q", health.Status, tt.wantHealth)
			}
			if health.DatabaseConnected != (tt.pingErr == nil) {
				t.Errorf("database_connected = %v", health.DatabaseConnected)
			}
			if health.Version != "test" {
				t.Errorf("version = %q, want test", health.Version)
			}
		})
	}
}

func TestAdminMetrics(t *testing.T) {
	snapshot := &models.MetricsSnapshot{
		TotalInteractions:     4,
		ClickedInteractions:   1,
		ClickThroughRate:      0.25,
		ProfileCount:          3,
		UserCount:             4,
		ProfileCompletionRate: 0.75,
		AverageTopScore:       80,
		ComputedAt:            time.Now(),
	}

	tests := []struct {
		name       string
		configured string
		sent       string
		statsErr   error
		wantStatus int
		wantCode   string
	}{
		{name: "open when no token configured", wantStatus: http.StatusOK},
		{name: "valid token", configured: "operator-token-123", sent: "operator-token-123", wantStatus: http.StatusOK},
		{name: "missing token", configured: "operator-token-123", wantStatus: http.StatusUnauthorized, wantCode: "UNAUTHORIZED"},
		{name: "wrong token", configured: "operator-token-123", sent: "nope", wantStatus: http.StatusUnauthorized, wantCode: "UNAUTHORIZED"},
		{name: "snapshot failure", statsErr: errors.New("query failed"), wantStatus: http.StatusInternalServerError, wantCode: "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := newTestDeps()
			deps.stats.snapshot = snapshot
			deps.stats.err = tt.statsErr
			h := newTestServer(t, deps, tt.configured)

			headers := map[string]string{}
			if tt.sent != "" {
				headers[middleware.AdminTokenHeader] = tt.sent
			}
			rec, env := doRequest(t, h, http.MethodGet, "/api/v1/admin/metrics", "", headers)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := errorCode(env); got != tt.wantCode {
				t.Errorf("code = %q, want %q", got, tt.wantCode)
			}
			if tt.wantStatus == http.StatusOK {
				var got models.MetricsSnapshot
				decodeData(t, env, &got)
				if got.ClickThroughRate != 0.25 || got.ProfileCompletionRate != 0.75 || got.AverageTopScore != 80 {
					t.Errorf("snapshot = %+v", got)
				}
			}
		})
	}
}

func TestRouter_NotFoundAndMethod(t *testing.T) {
	h := newTestServer(t, newTestDeps(), "")

	rec, env := doRequest(t, h, http.MethodGet, "/api/v1/nope", "", nil)
	if rec.Code != http.StatusNotFound || errorCode(env) != "NOT_FOUND" {
		t.Errorf("unknown route: status = %d code = %q", rec.Code, errorCode(env))
	}

	rec, env = doRequest(t, h, http.MethodDelete, "/api/v1/users/1/matches", "", nil)
	if rec.Code != http.StatusMethodNotAllowed || errorCode(env) != "METHOD_NOT_ALLOWED" {
		t.Errorf("wrong method: status = %d code = %q", rec.Code, errorCode(env))
	}
}

func TestRouter_SecurityHeadersAndRequestID(t *testing.T) {
	h := newTestServer(t, newTestDeps(), "")

	rec, _ := doRequest(t, h, http.MethodGet, "/api/v1/health", "", map[string]string{"X-Forwarded-Proto": "https"})

	want := map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"Referrer-Policy":        "strict-origin-when-cross-origin",
	}
	for header, value := range want {
		if got := rec.Header().Get(header); got != value {
			t.Errorf("%s = %q, want %q", header, got, value)
		}
	}
	if rec.Header().Get("Strict-Transport-Security") == "" {
		t.Error("HSTS missing for forwarded https request")
	}
	if rec.Header().Get(middleware.RequestIDHeader) == "" {
		t.Error("X-Request-ID missing")
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	h := newTestServer(t, newTestDeps(), "")

	tests := []struct {
		origin string
		want   string
	}{
		{origin: "https://app.example", want: "https://app.example"},
		{origin: "https://evil.example", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodOptions, "/api/v1/users", nil)
			req.Header.Set("Origin", tt.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.want {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRouter_RateLimit(t *testing.T) {
	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitRequests = 2
	cfg.RateLimitWindow = time.Minute

	deps := newTestDeps()
	h := NewRouter(NewHandler(deps.store, deps.engine, deps.tracker, deps.stats, "test"), NewChiMiddleware(cfg), "").SetupChi()

	for i := 0; i < 2; i++ {
		rec, _ := doRequest(t, h, http.MethodGet, "/api/v1/health", "", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i+1, rec.Code)
		}
	}

	rec, env := doRequest(t, h, http.MethodGet, "/api/v1/health", "", nil)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if errorCode(env) != "RATE_LIMITED" {
		t.Errorf("code = %q, want RATE_LIMITED", errorCode(env))
	}
}

func TestRouter_PrometheusEndpoint(t *testing.T) {
	h := newTestServer(t, newTestDeps(), "")

	doRequest(t, h, http.MethodGet, "/api/v1/health", "", nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `api_requests_total{endpoint="/api/v1/health"`) {
		t.Error("exposition is missing the health request counter")
	}
}

func TestChiMiddlewareConfigFromSecurity(t *testing.T) {
	if cfg := ChiMiddlewareConfigFromSecurity(nil); cfg.RateLimitRequests != 100 {
		t.Errorf("nil security: rate limit = %d, want default 100", cfg.RateLimitRequests)
	}
}
