// Roommatch - Roommate Compatibility Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roommatch

package api

import (
	"net/http"
	"time"
)

// AdminMetrics returns the evaluation snapshot: click-through rate, profile
// completion rate and average top score.
//
// Method: GET
// Path: /api/v1/admin/metrics
func (h *Handler) AdminMetrics(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	snapshot, err := h.stats.Snapshot(r.Context())
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute metrics", err)
		return
	}

	respondSuccess(w, http.StatusOK, snapshot, start)
}
