// Roommatch - Roommate Compatibility Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roommatch

package interactions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/roommatch/internal/database"
	"github.com/tomtom215/roommatch/internal/logging"
	"github.com/tomtom215/roommatch/internal/metrics"
	"github.com/tomtom215/roommatch/internal/models"
)

// ErrLookup is returned by Track when the click target has no profile.
var ErrLookup = errors.New("click target not found")

// Click results reported to metrics.
const (
	ClickLink          = "link"
	ClickNoPhone       = "no_phone"
	ClickUnknownTarget = "unknown_target"
)

// Store persists interactions.
type Store interface {
	UpsertInteractions(ctx context.Context, viewerID int64, targets []database.ViewedTarget) error
	MarkClicked(ctx context.Context, viewerID, targetID int64) (bool, error)
}

// ProfileLookup resolves a click target's profile.
type ProfileLookup interface {
	GetProfile(ctx context.Context, userID int64) (*models.Profile, error)
}

// BreakerConfig configures the write circuit breaker.
type BreakerConfig struct {
	Name             string
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold uint32
}

// DefaultBreakerConfig opens after 5 consecutive write failures and probes again after 30s.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Name:             "interactions",
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 5,
	}
}

// Tracker records views and clicks.
type Tracker struct {
	store    Store
	profiles ProfileLookup
	links    LinkBuilder
	breaker  *gobreaker.CircuitBreaker[any]
	logger   zerolog.Logger
}

// NewTracker creates a Tracker.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewTracker(store Store, profiles ProfileLookup, links LinkBuilder, breakerCfg BreakerConfig, logger zerolog.Logger) *Tracker {
	t := &Tracker{
		store:    store,
		profiles: profiles,
		links:    links,
		logger:   logger.With().Str("component", "interactions").Logger(),
	}
	t.breaker = newBreaker(breakerCfg, t.logger)
	return t
}

//nolint:gocritic // zerolog.Logger is designed to be passed by value
func newBreaker(cfg BreakerConfig, logger zerolog.Logger) *gobreaker.CircuitBreaker[any] {
	metrics.SetCircuitBreakerState(cfg.Name, int(gobreaker.StateClosed))

	return gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.SetCircuitBreakerState(name, int(to))
			logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Circuit breaker state changed")
		},
	})
}

// BreakerState returns the write breaker state ("closed", "half-open" or "open").
func (t *Tracker) BreakerState() string {
	return t.breaker.State().String()
}

// RecordViews upserts one interaction per shown match. Repeating a call for
// the same pair overwrites the score and keeps the clicked flag.
func (t *Tracker) RecordViews(ctx context.Context, viewerID int64, matches []models.Match) error {
	if len(matches) == 0 {
		return nil
	}

	targets := make([]database.ViewedTarget, len(matches))
	for i, m := range matches {
		targets[i] = database.ViewedTarget{TargetID: m.TargetUserID, MatchScore: m.Score}
	}

	_, err := t.breaker.Execute(func() (any, error) {
		return nil, t.store.UpsertInteractions(ctx, viewerID, targets)
	})
	if err != nil {
		metrics.RecordInteractionWriteFailure("record_views", failureReason(err))
		return fmt.Errorf("record views for viewer %d: %w", viewerID, err)
	}

	metrics.RecordInteractionUpserts(len(targets))
	return nil
}

// MarkClicked flags the (viewer, target) pair as clicked. A pair that was
// never shown is left alone and is not an error.
func (t *Tracker) MarkClicked(ctx context.Context, viewerID, targetID int64) error {
	result, err := t.breaker.Execute(func() (any, error) {
		return t.store.MarkClicked(ctx, viewerID, targetID)
	})
	if err != nil {
		metrics.RecordInteractionWriteFailure("mark_clicked", failureReason(err))
		return fmt.Errorf("mark click %d->%d: %w", viewerID, targetID, err)
	}

	if found, ok := result.(bool); ok && !found {
		t.logger.Debug().
			Int64("viewer_id", viewerID).
			Int64("target_id", targetID).
			Msg("Click without a recorded view")
	}
	return nil
}

// Track handles a click-through: it records the click and returns the deep
// link for the target, or nil when the target has no phone number. An
// unknown target yields ErrLookup. A failed click write is logged and does
// not withhold the link.
func (t *Tracker) Track(ctx context.Context, viewerID, targetID int64) (*string, error) {
	log := logging.LoggerFromContext(ctx).With().
		Str("component", "interactions").
		Int64("viewer_id", viewerID).
		Int64("target_id", targetID).
		Logger()

	target, err := t.profiles.GetProfile(ctx, targetID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			metrics.RecordClick(ClickUnknownTarget)
			log.Warn().Msg("Click on unknown target")
			return nil, fmt.Errorf("%w: user %d", ErrLookup, targetID)
		}
		return nil, fmt.Errorf("look up target %d: %w", targetID, err)
	}

	if err := t.MarkClicked(ctx, viewerID, targetID); err != nil {
		log.Error().Err(err).Msg("Failed to record click")
	}

	if !target.HasPhone() {
		metrics.RecordClick(ClickNoPhone)
		return nil, nil
	}

	link := t.links.Build(*target.PhoneNumber)
	metrics.RecordClick(ClickLink)
	log.Debug().Str("phone", logging.RedactPhone(*target.PhoneNumber)).Msg("Click-through link issued")
	return &link, nil
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return "circuit_open"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return "timeout"
	default:
		return "store_error"
	}
}
