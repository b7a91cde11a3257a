// Roommatch - Roommate Compatibility Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roommatch

package models

import "time"

// Interaction records that a target was shown to a viewer and whether the
// viewer clicked through. There is at most one row per (viewer, target).
type Interaction struct {
	ViewerID    int64     `json:"viewer_id"`
	TargetID    int64     `json:"target_id"`
	MatchScore  int       `json:"match_score"`
	LastUpdated time.Time `json:"last_updated"`

	// WhatsAppClicked only ever moves from false to true.
	WhatsAppClicked bool `json:"whatsapp_clicked"`
}

// InteractionTotals are the raw aggregates the metrics snapshot is derived from.
type InteractionTotals struct {
	Total   int64 `json:"total"`
	Clicked int64 `json:"clicked"`

	// Viewers is the number of distinct viewers with at least one interaction.
	Viewers int64 `json:"viewers"`

	// TopScoreSum is the sum over those viewers of their maximum match score.
	TopScoreSum float64 `json:"top_score_sum"`
}

// MetricsSnapshot holds engine evaluation figures computed on demand.
type MetricsSnapshot struct {
	TotalInteractions     int64     `json:"total_interactions"`
	ClickedInteractions   int64     `json:"clicked_interactions"`
	ClickThroughRate      float64   `json:"click_through_rate"`
	ProfileCount          int       `json:"profile_count"`
	UserCount             int       `json:"user_count"`
	ProfileCompletionRate float64   `json:"profile_completion_rate"`
	AverageTopScore       float64   `json:"average_top_score"`
	ComputedAt            time.Time `json:"computed_at"`
}
