// Roommatch - Roommate Compatibility Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roommatch

package models

import "time"

// ScoringPath identifies which scorer produced a session's ranking.
type ScoringPath string

const (
	// PathHeuristic is the deterministic rule-based scorer.
	PathHeuristic ScoringPath = "heuristic"

	// PathLearned is the fitted regression model.
	PathLearned ScoringPath = "learned"
)

// Match is one ranked candidate in a viewer's dashboard.
type Match struct {
	TargetUserID     int64   `json:"target_user_id"`
	DisplayName      string  `json:"display_name"`
	Score            int     `json:"score"`
	SleepSchedule    string  `json:"sleep_schedule"`
	CleanlinessLevel int     `json:"cleanliness_level"`
	PhoneNumber      *string `json:"phone_number"`
}

// Dashboard is the result of one viewer scoring session.
type Dashboard struct {
	ViewerID int64       `json:"viewer_id"`
	Matches  []Match     `json:"matches"`
	Path     ScoringPath `json:"path"`

	// MissingPhone is set when the viewer has not shared a phone number yet.
	MissingPhone bool `json:"missing_phone"`

	// CandidateCount is the number of profiles scored before truncation.
	CandidateCount int `json:"candidate_count"`

	// ModelProfileCount is the profile count the serving model was trained at (0 for heuristic).
	ModelProfileCount int `json:"model_profile_count,omitempty"`

	GeneratedAt time.Time `json:"generated_at"`
}
