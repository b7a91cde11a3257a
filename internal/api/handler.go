// Roommatch - Roommate Compatibility Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roommatch

package api

import (
	"context"
	"time"

	"github.com/tomtom215/roommatch/internal/models"
)

// Store is the user and profile persistence the handlers need.
type Store interface {
	CreateUser(ctx context.Context, username, firstName, email string) (*models.User, error)
	CreateProfile(ctx context.Context, profile *models.Profile) error
	UpdatePhone(ctx context.Context, userID int64, phone string) error
	GetProfile(ctx context.Context, userID int64) (*models.Profile, error)
	Ping(ctx context.Context) error
}

// MatchEngine runs dashboard sessions.
type MatchEngine interface {
	Dashboard(ctx context.Context, viewerID int64) (*models.Dashboard, error)
}

// ClickTracker records connect clicks and builds deep links.
type ClickTracker interface {
	Track(ctx context.Context, viewerID, targetID int64) (*string, error)
}

// MetricsSource computes the evaluation snapshot.
type MetricsSource interface {
	Snapshot(ctx context.Context) (*models.MetricsSnapshot, error)
}

// Handler holds the collaborators behind every API endpoint.
type Handler struct {
	store     Store
	engine    MatchEngine
	tracker   ClickTracker
	stats     MetricsSource
	version   string
	startTime time.Time
}

// NewHandler creates a Handler.
func NewHandler(store Store, engine MatchEngine, tracker ClickTracker, stats MetricsSource, version string) *Handler {
	return &Handler{
		store:     store,
		engine:    engine,
		tracker:   tracker,
		stats:     stats,
		version:   version,
		startTime: time.Now(),
	}
}
