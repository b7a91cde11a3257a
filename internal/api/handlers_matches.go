// Roommatch - Roommate Compatibility Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roommatch

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/roommatch/internal/interactions"
	"github.com/tomtom215/roommatch/internal/logging"
	"github.com/tomtom215/roommatch/internal/match"
	"github.com/tomtom215/roommatch/internal/models"
)

// Matches runs a dashboard session for the viewer: the top compatible
// profiles, the scoring path used, and whether the viewer still needs to
// share a phone number.
//
// Method: GET
// Path: /api/v1/users/{userID}/matches
//
// Response:
//   - 200: dashboard
//   - 400: invalid user ID
//   - 404: viewer has no profile yet
//   - 500: scoring or storage failure
func (h *Handler) Matches(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	viewerID, ok := requireID(w, r, "userID")
	if !ok {
		return
	}

	dashboard, err := h.engine.Dashboard(r.Context(), viewerID)
	switch {
	case errors.Is(err, match.ErrProfileNotFound):
		respondError(w, r, http.StatusNotFound, "PROFILE_NOT_FOUND", "Complete the intake quiz first", nil)
		return
	case err != nil:
		respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute matches", err)
		return
	}

	respondSuccess(w, http.StatusOK, dashboard, start)
}

// Connect records that the viewer clicked through to a match and returns
// the WhatsApp deep link. Lookup failures answer with a null link rather
// than an error so the client can fall back quietly.
//
// Method: POST
// Path: /api/v1/users/{userID}/connect/{targetID}
//
// Response:
//   - 200: {"target_user_id": n, "link": "https://wa.me/..." | null}
//   - 400: invalid path IDs
func (h *Handler) Connect(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	viewerID, ok := requireID(w, r, "userID")
	if !ok {
		return
	}
	targetID, ok := requireID(w, r, "targetID")
	if !ok {
		return
	}

	link, err := h.tracker.Track(r.Context(), viewerID, targetID)
	if err != nil {
		level := zerolog.WarnLevel
		if errors.Is(err, interactions.ErrLookup) {
			level = zerolog.DebugLevel
		}
		logging.Ctx(r.Context()).WithLevel(level).Err(err).
			Int64("viewer_id", viewerID).
			Int64("target_id", targetID).
			Msg("Connect answered without link")
		link = nil
	}

	respondSuccess(w, http.StatusOK, models.ConnectResponse{
		TargetUserID: targetID,
		Link:         link,
	}, start)
}
