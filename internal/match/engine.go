// Roommatch - Roommate Compatibility Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roommatch

package match

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/tomtom215/roommatch/internal/metrics"
	"github.com/tomtom215/roommatch/internal/models"
)

// retrainKey is the single-flight key shared by every retrain attempt.
const retrainKey = "model"

// ProfileSource provides profiles in creation order.
type ProfileSource interface {
	ListProfiles(ctx context.Context) ([]models.Profile, error)
}

// ModelStore holds the process-wide model.
// Load never fails: a missing or corrupt artifact is reported as nil.
type ModelStore interface {
	Load(ctx context.Context) *TrainedModel
	Save(ctx context.Context, model *TrainedModel) error
}

// ViewRecorder records which matches a viewer was shown.
type ViewRecorder interface {
	RecordViews(ctx context.Context, viewerID int64, matches []models.Match) error
}

// Ranking is the scored and truncated output for one viewer.
type Ranking struct {
	Matches []models.Match
	Path    models.ScoringPath

	// Model is the model used on the learned path, nil on the heuristic path.
	Model *TrainedModel

	// Candidates is the number of profiles scored before truncation.
	Candidates int
}

// Engine orchestrates scoring sessions and the model retrain lifecycle.
type Engine struct {
	config   *Config
	profiles ProfileSource
	store    ModelStore
	trainer  *Trainer
	views    ViewRecorder
	logger   zerolog.Logger

	retrainGroup singleflight.Group
	limiter      *rate.Limiter
	pending      chan struct{}
	now          func() time.Time
}

// NewEngine creates an engine. The view recorder is optional and may be set
// later with SetViewRecorder.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewEngine(cfg *Config, profiles ProfileSource, store ModelStore, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid match config: %w", err)
	}
	if profiles == nil {
		return nil, errors.New("profile source is required")
	}
	if store == nil {
		return nil, errors.New("model store is required")
	}

	e := &Engine{
		config:   cfg,
		profiles: profiles,
		store:    store,
		trainer:  NewTrainer(logger),
		logger:   logger.With().Str("component", "match-engine").Logger(),
		pending:  make(chan struct{}, 1),
		now:      time.Now,
	}
	if cfg.RetrainMinSpacing > 0 {
		e.limiter = rate.NewLimiter(rate.Every(cfg.RetrainMinSpacing), 1)
	}

	return e, nil
}

// SetViewRecorder sets the recorder that receives every session's matches.
func (e *Engine) SetViewRecorder(v ViewRecorder) {
	e.views = v
}

// Config returns the engine configuration.
func (e *Engine) Config() *Config {
	return e.config
}

// RetrainSignals delivers a value whenever a session defers a due retrain to
// the background. Only meaningful with Config.AsyncRetrain.
func (e *Engine) RetrainSignals() <-chan struct{} {
	return e.pending
}

// Dashboard runs one scoring session for viewerID and records the views.
// It returns ErrProfileNotFound when the viewer has no profile.
func (e *Engine) Dashboard(ctx context.Context, viewerID int64) (*models.Dashboard, error) {
	profiles, err := e.profiles.ListProfiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	viewerIdx := -1
	for i := range profiles {
		if profiles[i].UserID == viewerID {
			viewerIdx = i
			break
		}
	}
	if viewerIdx < 0 {
		return nil, fmt.Errorf("%w: user %d", ErrProfileNotFound, viewerID)
	}
	viewer := profiles[viewerIdx]

	candidates := make([]models.Profile, 0, len(profiles)-1)
	for i := range profiles {
		if profiles[i].UserID != viewerID {
			candidates = append(candidates, profiles[i])
		}
	}

	ranking := e.rankWithSnapshot(ctx, &viewer, candidates, profiles)

	if e.views != nil && len(ranking.Matches) > 0 {
		if err := e.views.RecordViews(ctx, viewerID, ranking.Matches); err != nil {
			e.logger.Warn().Err(err).Int64("viewer_id", viewerID).Msg("failed to record views")
		}
	}

	dashboard := &models.Dashboard{
		ViewerID:       viewerID,
		Matches:        ranking.Matches,
		Path:           ranking.Path,
		MissingPhone:   !viewer.HasPhone(),
		CandidateCount: ranking.Candidates,
		GeneratedAt:    e.now().UTC(),
	}
	if ranking.Model != nil {
		dashboard.ModelProfileCount = ranking.Model.TrainedAtProfileCount
	}
	return dashboard, nil
}

// Rank scores candidates for viewer. total is the deployment's profile count
// and drives path selection and the retrain trigger.
func (e *Engine) Rank(ctx context.Context, viewer *models.Profile, candidates []models.Profile, total int) Ranking {
	return e.rank(ctx, viewer, candidates, total, nil)
}

func (e *Engine) rankWithSnapshot(ctx context.Context, viewer *models.Profile, candidates, snapshot []models.Profile) Ranking {
	return e.rank(ctx, viewer, candidates, len(snapshot), snapshot)
}

func (e *Engine) rank(ctx context.Context, viewer *models.Profile, candidates []models.Profile, total int, snapshot []models.Profile) Ranking {
	start := time.Now()

	model := e.selectModel(ctx, total, snapshot)

	path := models.PathHeuristic
	if model != nil {
		path = models.PathLearned
	}

	matches := make([]models.Match, 0, len(candidates))
	for i := range candidates {
		c := &candidates[i]
		var score int
		if model != nil {
			score = model.Score(Extract(viewer, c))
		} else {
			score = HeuristicScore(viewer, c)
		}
		matches = append(matches, models.Match{
			TargetUserID:     c.UserID,
			DisplayName:      c.DisplayName,
			Score:            score,
			SleepSchedule:    c.SleepSchedule,
			CleanlinessLevel: c.CleanlinessLevel,
			PhoneNumber:      c.PhoneNumber,
		})
	}

	// Stable: equal scores keep candidate input order.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > e.config.TopN {
		matches = matches[:e.config.TopN]
	}

	metrics.RecordMatchSession(string(path), len(candidates), time.Since(start))

	return Ranking{
		Matches:    matches,
		Path:       path,
		Model:      model,
		Candidates: len(candidates),
	}
}

// selectModel picks the model for one session, or nil for the heuristic path.
// The choice is made once and applies to every candidate in the session.
func (e *Engine) selectModel(ctx context.Context, total int, snapshot []models.Profile) *TrainedModel {
	if total < e.config.ActivationThreshold {
		return nil
	}

	model := e.store.Load(ctx)
	if model != nil && !e.config.RetrainDue(model.TrainedAtProfileCount, total) {
		return model
	}

	if e.config.AsyncRetrain {
		e.signalRetrain()
		return model
	}

	fresh, err := e.retrain(ctx, snapshot, false)
	if errors.Is(err, ErrRetrainThrottled) {
		// Refused, not failed: keep serving whatever model is installed.
		e.logger.Debug().
			Int("profiles", total).
			Bool("stale_model", model != nil).
			Msg("retrain throttled, keeping current model")
		return model
	}
	if err != nil {
		event := e.logger.Warn()
		if errors.Is(err, ErrTrainingUnavailable) {
			event = e.logger.Debug()
		}
		event.Err(err).
			Int("profiles", total).
			Bool("stale_model", model != nil).
			Msg("retrain failed, using heuristic for this session")
		return nil
	}
	return fresh
}

// signalRetrain queues a background retrain without blocking.
func (e *Engine) signalRetrain() {
	select {
	case e.pending <- struct{}{}:
	default:
	}
}

// MaybeRetrain retrains only when no model exists or the retrain trigger holds.
// It reports whether a new model was installed.
func (e *Engine) MaybeRetrain(ctx context.Context) (bool, error) {
	profiles, err := e.profiles.ListProfiles(ctx)
	if err != nil {
		return false, fmt.Errorf("list profiles: %w", err)
	}
	if len(profiles) < e.config.ActivationThreshold {
		return false, nil
	}

	before := e.store.Load(ctx)
	if before != nil && !e.config.RetrainDue(before.TrainedAtProfileCount, len(profiles)) {
		return false, nil
	}

	after, err := e.retrain(ctx, profiles, false)
	if err != nil {
		return false, err
	}
	return after != before, nil
}

// Retrain unconditionally fits and installs a new model from current profiles.
func (e *Engine) Retrain(ctx context.Context) (*TrainedModel, error) {
	profiles, err := e.profiles.ListProfiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	return e.retrain(ctx, profiles, true)
}

// retrain runs at most one training at a time. Callers arriving while a run
// is in flight share its result. Unless force is set, the trigger is checked
// again inside the flight so a run that just finished is not repeated.
//
// The flight runs on a detached context bounded by RetrainTimeout, so a
// client disconnect does not fail the run for every caller sharing it.
func (e *Engine) retrain(callerCtx context.Context, profiles []models.Profile, force bool) (*TrainedModel, error) {
	v, err, shared := e.retrainGroup.Do(retrainKey, func() (interface{}, error) {
		ctx, cancel := e.flightContext(callerCtx)
		defer cancel()

		if profiles == nil {
			var err error
			if profiles, err = e.profiles.ListProfiles(ctx); err != nil {
				return nil, fmt.Errorf("list profiles: %w", err)
			}
		}

		current := e.store.Load(ctx)
		if !force && current != nil && !e.config.RetrainDue(current.TrainedAtProfileCount, len(profiles)) {
			metrics.RecordRetrain(metrics.RetrainSkipped, 0)
			return current, nil
		}

		if e.limiter != nil && !e.limiter.Allow() {
			metrics.RecordRetrain(metrics.RetrainThrottled, 0)
			return nil, ErrRetrainThrottled
		}

		start := time.Now()
		model, err := e.trainer.Train(ctx, profiles)
		if err != nil {
			outcome := metrics.RetrainError
			if errors.Is(err, ErrTrainingUnavailable) {
				outcome = metrics.RetrainUnavailable
			}
			metrics.RecordRetrain(outcome, time.Since(start))
			return nil, err
		}

		if err := e.store.Save(ctx, model); err != nil {
			if !errors.Is(err, ErrPersistence) {
				metrics.RecordRetrain(metrics.RetrainError, time.Since(start))
				return nil, fmt.Errorf("install model: %w", err)
			}
			// The store keeps serving the new model from memory; the write is
			// retried on the next retrain.
			e.logger.Warn().Err(err).Msg("model trained but not persisted")
			metrics.RecordRetrain(metrics.RetrainPersistError, time.Since(start))
		} else {
			metrics.RecordRetrain(metrics.RetrainSuccess, time.Since(start))
		}
		metrics.SetModelProfileCount(model.TrainedAtProfileCount)

		e.logger.Info().
			Int("profiles", model.TrainedAtProfileCount).
			Int("previous_profiles", profileCountOf(current)).
			Dur("duration", time.Since(start)).
			Msg("model retrained")

		return model, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		e.logger.Debug().Msg("joined in-flight retrain")
	}
	return v.(*TrainedModel), nil
}

func (e *Engine) flightContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx := context.WithoutCancel(parent)
	if e.config.RetrainTimeout > 0 {
		return context.WithTimeout(ctx, e.config.RetrainTimeout)
	}
	return context.WithCancel(ctx)
}

func profileCountOf(m *TrainedModel) int {
	if m == nil {
		return 0
	}
	return m.TrainedAtProfileCount
}
