// Roommatch - Roommate Compatibility Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roommatch

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/roommatch/internal/models"
)

// Health reports database connectivity. It answers 503 when the database
// cannot be reached so load balancers stop routing to the instance.
//
// Method: GET
// Path: /api/v1/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	dbConnected := h.store != nil && h.store.Ping(r.Context()) == nil

	status, code := "healthy", http.StatusOK
	if !dbConnected {
		status, code = "degraded", http.StatusServiceUnavailable
	}

	respondSuccess(w, code, models.HealthStatus{
		Status:            status,
		Version:           h.version,
		DatabaseConnected: dbConnected,
		Uptime:            time.Since(h.startTime).Seconds(),
	}, start)
}
