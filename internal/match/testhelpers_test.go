// Roommatch - Roommate Compatibility Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roommatch

package match

import (
	"fmt"

	"github.com/tomtom215/roommatch/internal/models"
)

func profile(id int64, sleep string, clean, noise int, study string) models.Profile {
	return models.Profile{
		UserID:           id,
		DisplayName:      fmt.Sprintf("user%d", id),
		SleepSchedule:    sleep,
		CleanlinessLevel: clean,
		NoiseTolerance:   noise,
		StudyHabit:       study,
	}
}

// varietyProfiles returns n profiles cycling through every answer.
func varietyProfiles(n int) []models.Profile {
	sleeps := []string{models.SleepEarly, models.SleepLate}
	studies := []string{models.StudyMorning, models.StudyNight, models.StudyMix}

	out := make([]models.Profile, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, profile(
			int64(i+1),
			sleeps[i%len(sleeps)],
			1+(i*3)%5,
			1+(i*2+1)%5,
			studies[i%len(studies)],
		))
	}
	return out
}
