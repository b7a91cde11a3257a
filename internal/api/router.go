// Roommatch - Roommate Compatibility Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roommatch

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/roommatch/internal/middleware"
)

// Router wires handlers to routes.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
	adminToken    string
}

// NewRouter creates a Router. An empty adminToken leaves the admin
// endpoints open.
func NewRouter(handler *Handler, mw *ChiMiddleware, adminToken string) *Router {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}
	return &Router{
		handler:       handler,
		chiMiddleware: mw,
		adminToken:    adminToken,
	}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied in order.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // must be global to answer OPTIONS preflight

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusNotFound, "NOT_FOUND", "Route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(middleware.PrometheusMetrics)

		r.Get("/health", router.handler.Health)

		r.Post("/users", router.handler.CreateUser)
		r.Route("/users/{userID}", func(r chi.Router) {
			r.Post("/profile", router.handler.CreateProfile)
			r.Put("/phone", router.handler.UpdatePhone)
			r.Get("/matches", router.handler.Matches)
			r.Post("/connect/{targetID}", router.handler.Connect)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.AdminToken(router.adminToken, func(w http.ResponseWriter, r *http.Request) {
				respondError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid admin token", nil)
			}))
			r.Get("/metrics", router.handler.AdminMetrics)
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
