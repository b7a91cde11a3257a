// Roommatch - Roommate Compatibility Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roommatch

package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/roommatch/internal/logging"
	"github.com/tomtom215/roommatch/internal/match"
)

// Retrainer is the engine surface the retrain loop needs.
type Retrainer interface {
	// MaybeRetrain retrains when no model exists or the trigger holds.
	MaybeRetrain(ctx context.Context) (bool, error)

	// RetrainSignals fires when a session deferred a due retrain.
	RetrainSignals() <-chan struct{}
}

// RetrainServiceConfig holds configuration for the retrain loop.
type RetrainServiceConfig struct {
	// TrainOnStartup checks the trigger once before the first tick.
	TrainOnStartup bool

	// CheckInterval is how often the trigger is checked.
	// Default: 1m
	CheckInterval time.Duration

	// Timeout bounds a single retrain.
	// Default: 5m
	Timeout time.Duration
}

// RetrainService checks the retrain trigger periodically and whenever the
// engine signals. Failures are logged and retried on the next check; they
// never stop the service.
type RetrainService struct {
	engine Retrainer
	config RetrainServiceConfig
	logger zerolog.Logger
	name   string
}

// NewRetrainService creates a new retrain service.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewRetrainService(engine Retrainer, cfg RetrainServiceConfig, logger zerolog.Logger) *RetrainService {
	if cfg.CheckInterval <= 0 {
		cfg.CheckInterval = time.Minute
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Minute
	}
	return &RetrainService{
		engine: engine,
		config: cfg,
		logger: logger.With().Str("service", "retrain").Logger(),
		name:   "retrain-service",
	}
}

// Serve implements suture.Service.
func (s *RetrainService) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("train_on_startup", s.config.TrainOnStartup).
		Dur("check_interval", s.config.CheckInterval).
		Msg("retrain service starting")

	if s.config.TrainOnStartup {
		s.check(ctx, "startup")
	}

	ticker := time.NewTicker(s.config.CheckInterval)
	defer ticker.Stop()

	signals := s.engine.RetrainSignals()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("retrain service shutting down")
			return ctx.Err()

		case <-ticker.C:
			s.check(ctx, "schedule")

		case <-signals:
			s.check(ctx, "signal")
		}
	}
}

// check runs one trigger check under its own timeout and correlation ID.
func (s *RetrainService) check(ctx context.Context, reason string) {
	runCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	runCtx = logging.ContextWithNewCorrelationID(runCtx)
	log := s.logger.With().
		Str("correlation_id", logging.CorrelationIDFromContext(runCtx)).
		Str("reason", reason).
		Logger()

	start := time.Now()
	retrained, err := s.engine.MaybeRetrain(runCtx)
	switch {
	case err == nil && retrained:
		log.Info().Dur("duration", time.Since(start)).Msg("model retrained")
	case err == nil:
		log.Debug().Msg("retrain not due")
	case errors.Is(err, match.ErrTrainingUnavailable), errors.Is(err, match.ErrRetrainThrottled):
		log.Debug().Err(err).Msg("retrain skipped")
	case ctx.Err() != nil:
		// Shutting down.
	default:
		log.Warn().Err(err).Dur("duration", time.Since(start)).Msg("retrain failed, will retry on next check")
	}
}

// String returns the service name for logging.
func (s *RetrainService) String() string {
	return s.name
}
