// Roommatch - Roommate Compatibility Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roommatch

package match

import "github.com/tomtom215/roommatch/internal/models"

// Heuristic score bounds and penalties.
const (
	MaxScore = 100
	MinScore = 0

	SleepMismatchPenalty = 25
	StudyMismatchPenalty = 15
	LevelStepPenalty     = 5
)

// HeuristicScore returns the rule-based compatibility of p1 and p2 in [0, 100].
//
// Starting from 100 it deducts 25 for differing sleep schedules, 15 for
// differing study habits and 5 per step of cleanliness and noise tolerance
// difference. Identical answers score 100.
func HeuristicScore(p1, p2 *models.Profile) int {
	score := MaxScore
	if p1.SleepSchedule != p2.SleepSchedule {
		score -= SleepMismatchPenalty
	}
	if p1.StudyHabit != p2.StudyHabit {
		score -= StudyMismatchPenalty
	}
	score -= LevelStepPenalty * int(absDiff(p1.CleanlinessLevel, p2.CleanlinessLevel))
	score -= LevelStepPenalty * int(absDiff(p1.NoiseTolerance, p2.NoiseTolerance))

	if score < MinScore {
		return MinScore
	}
	return score
}
