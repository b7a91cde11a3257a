// Roommatch - Roommate Compatibility Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roommatch

package match

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/roommatch/internal/models"
)

// mockProfileSource serves a mutable profile list.
type mockProfileSource struct {
	mu       sync.Mutex
	profiles []models.Profile
	err      error
}

func (m *mockProfileSource) ListProfiles(_ context.Context) ([]models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := make([]models.Profile, len(m.profiles))
	copy(out, m.profiles)
	return out, nil
}

func (m *mockProfileSource) add(p ...models.Profile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles = append(m.profiles, p...)
}

// mockModelStore keeps the model in memory and counts saves.
type mockModelStore struct {
	mu        sync.Mutex
	model     *TrainedModel
	saves     atomic.Int32
	saveErr   error
	keepOnErr bool
	delay     time.Duration
}

func (m *mockModelStore) Load(_ context.Context) *TrainedModel {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.model
}

func (m *mockModelStore) Save(_ context.Context, model *TrainedModel) error {
	if m.delay > 0 {
		time.Sleep(m.delay)
	}
	m.saves.Add(1)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		if m.keepOnErr {
			m.model = model
		}
		return m.saveErr
	}
	m.model = model
	return nil
}

// mockViewRecorder captures recorded views.
type mockViewRecorder struct {
	mu      sync.Mutex
	viewer  int64
	matches []models.Match
	err     error
}

func (m *mockViewRecorder) RecordViews(_ context.Context, viewerID int64, matches []models.Match) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.viewer = viewerID
	m.matches = matches
	return m.err
}

func newTestEngine(t *testing.T, cfg *Config, profiles []models.Profile) (*Engine, *mockProfileSource, *mockModelStore) {
	t.Helper()
	source := &mockProfileSource{profiles: profiles}
	store := &mockModelStore{}
	engine, err := NewEngine(cfg, source, store, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return engine, source, store
}

func TestNewEngine_Validation(t *testing.T) {
	t.Parallel()

	source := &mockProfileSource{}
	store := &mockModelStore{}

	if _, err := NewEngine(&Config{TopN: 0, RetrainInterval: 5}, source, store, zerolog.Nop()); err == nil {
		t.Error("expected error for invalid config")
	}
	if _, err := NewEngine(nil, nil, store, zerolog.Nop()); err == nil {
		t.Error("expected error for missing profile source")
	}
	if _, err := NewEngine(nil, source, nil, zerolog.Nop()); err == nil {
		t.Error("expected error for missing model store")
	}

	engine, err := NewEngine(nil, source, store, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	if engine.Config().TopN != 5 {
		t.Errorf("default TopN = %d, want 5", engine.Config().TopN)
	}
}

func TestEngine_Dashboard_ProfileNotFound(t *testing.T) {
	t.Parallel()

	engine, _, _ := newTestEngine(t, nil, varietyProfiles(3))

	_, err := engine.Dashboard(context.Background(), 99)
	if !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("Dashboard() error = %v, want ErrProfileNotFound", err)
	}
}

func TestEngine_Dashboard_SourceError(t *testing.T) {
	t.Parallel()

	engine, source, _ := newTestEngine(t, nil, nil)
	source.err = errors.New("database is locked")

	if _, err := engine.Dashboard(context.Background(), 1); err == nil {
		t.Error("expected error when profiles cannot be listed")
	}
}

func TestEngine_Dashboard_LoneViewer(t *testing.T) {
	t.Parallel()

	engine, _, store := newTestEngine(t, nil, varietyProfiles(1))

	dash, err := engine.Dashboard(context.Background(), 1)
	if err != nil {
		t.Fatalf("Dashboard() error = %v", err)
	}
	if len(dash.Matches) != 0 {
		t.Errorf("got %d matches, want 0", len(dash.Matches))
	}
	if dash.Path != models.PathHeuristic {
		t.Errorf("Path = %q, want heuristic", dash.Path)
	}
	if store.Load(context.Background()) != nil {
		t.Error("no model should be installed with a single profile")
	}
}

func TestEngine_Dashboard_BelowThreshold(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.ActivationThreshold = 10
	engine, _, store := newTestEngine(t, cfg, varietyProfiles(6))

	dash, err := engine.Dashboard(context.Background(), 1)
	if err != nil {
		t.Fatalf("Dashboard() error = %v", err)
	}
	if dash.Path != models.PathHeuristic {
		t.Errorf("Path = %q, want heuristic", dash.Path)
	}
	if store.saves.Load() != 0 {
		t.Errorf("saves = %d, want 0 below threshold", store.saves.Load())
	}
	if dash.ModelProfileCount != 0 {
		t.Errorf("ModelProfileCount = %d, want 0", dash.ModelProfileCount)
	}
}

func TestEngine_Dashboard_TrainsOnFirstSession(t *testing.T) {
	t.Parallel()

	profiles := varietyProfiles(6)
	engine, _, store := newTestEngine(t, nil, profiles)
	recorder := &mockViewRecorder{}
	engine.SetViewRecorder(recorder)

	dash, err := engine.Dashboard(context.Background(), 1)
	if err != nil {
		t.Fatalf("Dashboard() error = %v", err)
	}

	if dash.Path != models.PathLearned {
		t.Fatalf("Path = %q, want learned", dash.Path)
	}
	if dash.ModelProfileCount != 6 {
		t.Errorf("ModelProfileCount = %d, want 6", dash.ModelProfileCount)
	}
	if dash.CandidateCount != 5 {
		t.Errorf("CandidateCount = %d, want 5", dash.CandidateCount)
	}
	if !dash.MissingPhone {
		t.Error("MissingPhone should be set for a viewer without a phone")
	}
	if store.saves.Load() != 1 {
		t.Errorf("saves = %d, want 1", store.saves.Load())
	}

	for _, m := range dash.Matches {
		if m.TargetUserID == 1 {
			t.Error("viewer appears in own matches")
		}
		target := profiles[m.TargetUserID-1]
		if want := HeuristicScore(&profiles[0], &target); m.Score != want {
			t.Errorf("score for %d = %d, want %d", m.TargetUserID, m.Score, want)
		}
	}

	if recorder.viewer != 1 || len(recorder.matches) != len(dash.Matches) {
		t.Errorf("recorded viewer %d with %d matches, want 1 with %d", recorder.viewer, len(recorder.matches), len(dash.Matches))
	}
}

func TestEngine_Dashboard_ViewRecorderErrorIgnored(t *testing.T) {
	t.Parallel()

	engine, _, _ := newTestEngine(t, nil, varietyProfiles(4))
	engine.SetViewRecorder(&mockViewRecorder{err: errors.New("circuit open")})

	if _, err := engine.Dashboard(context.Background(), 2); err != nil {
		t.Errorf("Dashboard() error = %v, want nil", err)
	}
}

func TestEngine_Dashboard_TopNAndOrdering(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.TopN = 3
	engine, _, _ := newTestEngine(t, cfg, varietyProfiles(10))

	dash, err := engine.Dashboard(context.Background(), 4)
	if err != nil {
		t.Fatalf("Dashboard() error = %v", err)
	}
	if len(dash.Matches) != 3 {
		t.Fatalf("got %d matches, want 3", len(dash.Matches))
	}
	for i := 1; i < len(dash.Matches); i++ {
		if dash.Matches[i-1].Score < dash.Matches[i].Score {
			t.Errorf("matches not sorted descending: %d before %d", dash.Matches[i-1].Score, dash.Matches[i].Score)
		}
	}
}

func TestEngine_Rank_StableTies(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.ActivationThreshold = 1000
	cfg.TopN = 10
	engine, _, _ := newTestEngine(t, cfg, nil)

	viewer := profile(100, models.SleepEarly, 3, 3, models.StudyMorning)
	candidates := []models.Profile{
		profile(7, models.SleepLate, 3, 3, models.StudyMorning),   // 75
		profile(3, models.SleepEarly, 3, 3, models.StudyMorning),  // 100
		profile(9, models.SleepLate, 3, 3, models.StudyMorning),   // 75
		profile(1, models.SleepEarly, 3, 3, models.StudyMorning),  // 100
		profile(5, models.SleepLate, 3, 3, models.StudyMorning),   // 75
		profile(2, models.SleepEarly, 4, 3, models.StudyMorning),  // 95
	}

	ranking := engine.Rank(context.Background(), &viewer, candidates, len(candidates)+1)

	want := []int64{3, 1, 2, 7, 9, 5}
	if len(ranking.Matches) != len(want) {
		t.Fatalf("got %d matches, want %d", len(ranking.Matches), len(want))
	}
	for i, id := range want {
		if ranking.Matches[i].TargetUserID != id {
			t.Errorf("position %d = user %d, want %d", i, ranking.Matches[i].TargetUserID, id)
		}
	}
}

func TestEngine_Rank_SinglePathPerSession(t *testing.T) {
	t.Parallel()

	engine, _, store := newTestEngine(t, nil, nil)
	fixed := constantModel(42)
	fixed.TrainedAtProfileCount = 4
	store.model = fixed

	viewer := profile(1, models.SleepEarly, 3, 3, models.StudyMorning)
	candidates := []models.Profile{
		profile(2, models.SleepEarly, 3, 3, models.StudyMorning),
		profile(3, models.SleepLate, 5, 1, models.StudyNight),
		profile(4, models.SleepLate, 1, 5, models.StudyMix),
	}

	ranking := engine.Rank(context.Background(), &viewer, candidates, 4)
	if ranking.Path != models.PathLearned || ranking.Model != fixed {
		t.Fatalf("Path = %q, want learned with the stored model", ranking.Path)
	}
	for _, m := range ranking.Matches {
		if m.Score != 42 {
			t.Errorf("score for %d = %d, want 42 from the model", m.TargetUserID, m.Score)
		}
	}
	if store.saves.Load() != 0 {
		t.Errorf("saves = %d, want 0 when the model is fresh", store.saves.Load())
	}
}

func TestEngine_RetrainTrigger(t *testing.T) {
	t.Parallel()

	all := varietyProfiles(12)
	engine, source, store := newTestEngine(t, nil, all[:3])
	ctx := context.Background()

	if _, err := engine.Dashboard(ctx, 1); err != nil {
		t.Fatalf("Dashboard() error = %v", err)
	}
	if got := store.Load(ctx).TrainedAtProfileCount; got != 3 {
		t.Fatalf("trained at %d, want 3", got)
	}

	// Four new profiles: one short of the interval.
	source.add(all[3:7]...)
	dash, err := engine.Dashboard(ctx, 1)
	if err != nil {
		t.Fatalf("Dashboard() error = %v", err)
	}
	if dash.ModelProfileCount != 3 || store.saves.Load() != 1 {
		t.Errorf("model at %d after %d saves, want 3 after 1", dash.ModelProfileCount, store.saves.Load())
	}

	// Fifth new profile triggers the retrain.
	source.add(all[7])
	dash, err = engine.Dashboard(ctx, 1)
	if err != nil {
		t.Fatalf("Dashboard() error = %v", err)
	}
	if dash.ModelProfileCount != 8 || store.saves.Load() != 2 {
		t.Errorf("model at %d after %d saves, want 8 after 2", dash.ModelProfileCount, store.saves.Load())
	}
}

func TestEngine_ConcurrentSessionsTrainOnce(t *testing.T) {
	t.Parallel()

	engine, _, store := newTestEngine(t, nil, varietyProfiles(20))
	store.delay = 20 * time.Millisecond

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(viewer int64) {
			defer wg.Done()
			dash, err := engine.Dashboard(context.Background(), viewer)
			if err != nil {
				errs <- err
				return
			}
			if dash.Path != models.PathLearned {
				errs <- fmt.Errorf("viewer %d got path %q", viewer, dash.Path)
			}
		}(int64(i%20) + 1)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
	if got := store.saves.Load(); got != 1 {
		t.Errorf("saves = %d, want exactly 1", got)
	}
}

func TestEngine_AsyncRetrain(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.AsyncRetrain = true
	engine, _, store := newTestEngine(t, cfg, varietyProfiles(5))
	ctx := context.Background()

	dash, err := engine.Dashboard(ctx, 1)
	if err != nil {
		t.Fatalf("Dashboard() error = %v", err)
	}
	if dash.Path != models.PathHeuristic {
		t.Errorf("Path = %q, want heuristic while retrain is deferred", dash.Path)
	}
	if store.saves.Load() != 0 {
		t.Errorf("saves = %d, want 0 before the background retrain", store.saves.Load())
	}

	select {
	case <-engine.RetrainSignals():
	default:
		t.Fatal("expected a retrain signal")
	}

	installed, err := engine.MaybeRetrain(ctx)
	if err != nil || !installed {
		t.Fatalf("MaybeRetrain() = %v, %v, want true, nil", installed, err)
	}

	dash, err = engine.Dashboard(ctx, 1)
	if err != nil {
		t.Fatalf("Dashboard() error = %v", err)
	}
	if dash.Path != models.PathLearned {
		t.Errorf("Path = %q, want learned after retrain", dash.Path)
	}

	installed, err = engine.MaybeRetrain(ctx)
	if err != nil || installed {
		t.Errorf("MaybeRetrain() = %v, %v, want false, nil with a fresh model", installed, err)
	}
}

func TestEngine_PersistenceFailureKeepsServing(t *testing.T) {
	t.Parallel()

	engine, _, store := newTestEngine(t, nil, varietyProfiles(4))
	store.saveErr = fmt.Errorf("%w: disk full", ErrPersistence)
	store.keepOnErr = true

	dash, err := engine.Dashboard(context.Background(), 1)
	if err != nil {
		t.Fatalf("Dashboard() error = %v", err)
	}
	if dash.Path != models.PathLearned {
		t.Errorf("Path = %q, want learned from the in-memory model", dash.Path)
	}
}

func TestEngine_InstallFailureFallsBack(t *testing.T) {
	t.Parallel()

	engine, _, store := newTestEngine(t, nil, varietyProfiles(4))
	store.saveErr = ErrStaleModel

	dash, err := engine.Dashboard(context.Background(), 1)
	if err != nil {
		t.Fatalf("Dashboard() error = %v", err)
	}
	if dash.Path != models.PathHeuristic {
		t.Errorf("Path = %q, want heuristic when the model cannot be installed", dash.Path)
	}
}

func TestEngine_RetrainFailureRetainsModel(t *testing.T) {
	t.Parallel()

	engine, source, store := newTestEngine(t, nil, varietyProfiles(3))
	ctx := context.Background()

	before, err := engine.Retrain(ctx)
	if err != nil {
		t.Fatalf("Retrain() error = %v", err)
	}

	source.mu.Lock()
	source.profiles = source.profiles[:1]
	source.mu.Unlock()

	if _, err := engine.Retrain(ctx); !errors.Is(err, ErrTrainingUnavailable) {
		t.Fatalf("Retrain() error = %v, want ErrTrainingUnavailable", err)
	}
	if store.Load(ctx) != before {
		t.Error("previous model was replaced by a failed retrain")
	}
}

func TestEngine_RetrainThrottled(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.RetrainMinSpacing = time.Hour
	engine, _, _ := newTestEngine(t, cfg, varietyProfiles(3))
	ctx := context.Background()

	if _, err := engine.Retrain(ctx); err != nil {
		t.Fatalf("first Retrain() error = %v", err)
	}
	if _, err := engine.Retrain(ctx); !errors.Is(err, ErrRetrainThrottled) {
		t.Errorf("second Retrain() error = %v, want ErrRetrainThrottled", err)
	}
}

func TestEngine_ThrottledSessionKeepsModel(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.RetrainMinSpacing = time.Hour
	engine, source, store := newTestEngine(t, cfg, varietyProfiles(3))
	ctx := context.Background()

	first, err := engine.Dashboard(ctx, 1)
	if err != nil {
		t.Fatalf("first Dashboard() error = %v", err)
	}
	if first.Path != models.PathLearned || first.ModelProfileCount != 3 {
		t.Fatalf("first session path=%q model profiles=%d, want learned at 3", first.Path, first.ModelProfileCount)
	}

	// Enough new profiles to make a retrain due inside the spacing window.
	source.add(varietyProfiles(8)[3:]...)

	second, err := engine.Dashboard(ctx, 1)
	if err != nil {
		t.Fatalf("second Dashboard() error = %v", err)
	}
	if second.Path != models.PathLearned {
		t.Errorf("Path = %q, want learned with the installed model", second.Path)
	}
	if second.ModelProfileCount != 3 {
		t.Errorf("ModelProfileCount = %d, want 3 (stale but installed)", second.ModelProfileCount)
	}
	if second.CandidateCount != 7 {
		t.Errorf("CandidateCount = %d, want 7", second.CandidateCount)
	}
	if store.saves.Load() != 1 {
		t.Errorf("saves = %d, want 1", store.saves.Load())
	}
}

func TestEngine_RetrainOutlivesCallerCancellation(t *testing.T) {
	t.Parallel()

	engine, _, store := newTestEngine(t, nil, varietyProfiles(4))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	model, err := engine.Retrain(ctx)
	if err != nil {
		t.Fatalf("Retrain() with canceled caller error = %v", err)
	}
	if model.TrainedAtProfileCount != 4 {
		t.Errorf("TrainedAtProfileCount = %d, want 4", model.TrainedAtProfileCount)
	}
	if store.Load(context.Background()) != model {
		t.Error("model was not installed")
	}
}

func TestEngine_FlightContext(t *testing.T) {
	t.Parallel()

	parent, cancel := context.WithCancel(context.Background())
	cancel()

	t.Run("bounded by retrain timeout", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.RetrainTimeout = time.Minute
		engine, _, _ := newTestEngine(t, cfg, nil)

		ctx, done := engine.flightContext(parent)
		defer done()

		if err := ctx.Err(); err != nil {
			t.Errorf("flight context inherited cancellation: %v", err)
		}
		deadline, ok := ctx.Deadline()
		if !ok {
			t.Fatal("flight context has no deadline")
		}
		if until := time.Until(deadline); until <= 0 || until > time.Minute {
			t.Errorf("deadline in %v, want within 1m", until)
		}
	})

	t.Run("zero timeout has no deadline", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.RetrainTimeout = 0
		engine, _, _ := newTestEngine(t, cfg, nil)

		ctx, done := engine.flightContext(parent)
		defer done()

		if _, ok := ctx.Deadline(); ok {
			t.Error("flight context has a deadline, want none")
		}
		if err := ctx.Err(); err != nil {
			t.Errorf("flight context inherited cancellation: %v", err)
		}
	})
}
