// Roommatch - Roommate Compatibility Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roommatch

package interactions

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/roommatch/internal/models"
)

// StatsSource supplies the raw counts behind the metrics snapshot.
type StatsSource interface {
	InteractionTotals(ctx context.Context) (models.InteractionTotals, error)
	CountProfiles(ctx context.Context) (int, error)
	CountUsers(ctx context.Context) (int, error)
}

// Aggregator computes MetricsSnapshot on demand.
type Aggregator struct {
	source StatsSource
	now    func() time.Time
}

// NewAggregator creates an Aggregator.
func NewAggregator(source StatsSource) *Aggregator {
	return &Aggregator{source: source, now: time.Now}
}

// Snapshot reads the current counts and derives the ratios.
func (a *Aggregator) Snapshot(ctx context.Context) (*models.MetricsSnapshot, error) {
	totals, err := a.source.InteractionTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("interaction totals: %w", err)
	}
	profiles, err := a.source.CountProfiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("count profiles: %w", err)
	}
	users, err := a.source.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	return &models.MetricsSnapshot{
		TotalInteractions:     totals.Total,
		ClickedInteractions:   totals.Clicked,
		ClickThroughRate:      ratio(float64(totals.Clicked), float64(totals.Total)),
		ProfileCount:          profiles,
		UserCount:             users,
		ProfileCompletionRate: ratio(float64(profiles), float64(users)),
		AverageTopScore:       ratio(totals.TopScoreSum, float64(totals.Viewers)),
		ComputedAt:            a.now().UTC(),
	}, nil
}

// ratio returns num/den, or 0 when den is 0.
func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
