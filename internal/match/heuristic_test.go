// Roommatch - Roommate Compatibility Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roommatch

package match

import (
	"testing"

	"github.com/tomtom215/roommatch/internal/models"
)

func TestHeuristicScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		p1   models.Profile
		p2   models.Profile
		want int
	}{
		{
			name: "identical answers",
			p1:   profile(1, models.SleepEarly, 3, 3, models.StudyMorning),
			p2:   profile(2, models.SleepEarly, 3, 3, models.StudyMorning),
			want: 100,
		},
		{
			name: "all attributes differ",
			p1:   profile(1, models.SleepEarly, 3, 3, models.StudyMorning),
			p2:   profile(2, models.SleepLate, 5, 1, models.StudyNight),
			want: 15,
		},
		{
			name: "sleep mismatch only",
			p1:   profile(1, models.SleepEarly, 4, 2, models.StudyMix),
			p2:   profile(2, models.SleepLate, 4, 2, models.StudyMix),
			want: 75,
		},
		{
			name: "study mismatch only",
			p1:   profile(1, models.SleepLate, 4, 2, models.StudyMix),
			p2:   profile(2, models.SleepLate, 4, 2, models.StudyNight),
			want: 85,
		},
		{
			name: "maximum difference",
			p1:   profile(1, models.SleepEarly, 1, 1, models.StudyMorning),
			p2:   profile(2, models.SleepLate, 5, 5, models.StudyNight),
			want: 20,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := HeuristicScore(&tt.p1, &tt.p2); got != tt.want {
				t.Errorf("HeuristicScore() = %d, want %d", got, tt.want)
			}
			if got := HeuristicScore(&tt.p2, &tt.p1); got != tt.want {
				t.Errorf("HeuristicScore() reversed = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestHeuristicScore_Range(t *testing.T) {
	t.Parallel()

	profiles := varietyProfiles(30)
	for i := range profiles {
		for j := range profiles {
			got := HeuristicScore(&profiles[i], &profiles[j])
			if got < MinScore || got > MaxScore {
				t.Fatalf("HeuristicScore(%d, %d) = %d, out of range", i, j, got)
			}
		}
	}
}
