// Roommatch - Roommate Compatibility Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roommatch

package match

import "github.com/tomtom215/roommatch/internal/models"

// FeatureCount is the fixed length of a FeatureVector.
const FeatureCount = 6

// FeatureVector encodes an ordered (viewer, candidate) profile pair.
type FeatureVector [FeatureCount]float64

// FeatureNames labels each FeatureVector position. It is written into model
// artifacts so a layout change is detected on load.
var FeatureNames = [FeatureCount]string{
	"sleep_mismatch",
	"study_mismatch",
	"cleanliness_diff",
	"noise_diff",
	"viewer_cleanliness",
	"viewer_noise",
}

// Extract derives the feature vector for viewer p1 looking at candidate p2.
//
// The vector is not symmetric: the last two components describe the viewer,
// so Extract(a, b) and Extract(b, a) differ whenever a and b differ in
// cleanliness or noise tolerance.
func Extract(p1, p2 *models.Profile) FeatureVector {
	return FeatureVector{
		indicator(p1.SleepSchedule != p2.SleepSchedule),
		indicator(p1.StudyHabit != p2.StudyHabit),
		absDiff(p1.CleanlinessLevel, p2.CleanlinessLevel),
		absDiff(p1.NoiseTolerance, p2.NoiseTolerance),
		float64(p1.CleanlinessLevel),
		float64(p1.NoiseTolerance),
	}
}

func indicator(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func absDiff(a, b int) float64 {
	if a > b {
		return float64(a - b)
	}
	return float64(b - a)
}
