// Roommatch - Roommate Compatibility Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roommatch

package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/roommatch/internal/match"
	"github.com/tomtom215/roommatch/internal/metrics"
)

// Artifact schema identity.
const (
	SchemaName    = "roommatch.compatibility-model"
	SchemaVersion = 1
)

// artifact is the on-disk envelope around the model.
type artifact struct {
	Schema        string          `json:"schema"`
	SchemaVersion int             `json:"schema_version"`
	FeatureNames  []string        `json:"feature_names"`
	SavedAt       time.Time       `json:"saved_at"`
	Checksum      string          `json:"checksum"`
	Model         json.RawMessage `json:"model"`
}

// Repository caches the latest model in memory, backed by one file.
type Repository struct {
	path   string
	logger zerolog.Logger

	// mu serializes the first disk read and every save.
	mu      sync.Mutex
	loaded  atomic.Bool
	current atomic.Pointer[match.TrainedModel]
}

// NewRepository creates a repository for the artifact at path.
// The parent directory is created if needed; the file itself is read lazily.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewRepository(path string, logger zerolog.Logger) (*Repository, error) {
	if path == "" {
		return nil, errors.New("model path is required")
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil { //nolint:gosec // 0750 is acceptable for model storage
		return nil, fmt.Errorf("create model directory: %w", err)
	}

	return &Repository{
		path:   path,
		logger: logger.With().Str("component", "model-repository").Logger(),
	}, nil
}

// Path returns the artifact location.
func (r *Repository) Path() string {
	return r.path
}

// Load returns the cached model, reading the artifact on first use.
// A missing or corrupt artifact yields nil and is logged, never returned.
func (r *Repository) Load(_ context.Context) *match.TrainedModel {
	if r.loaded.Load() {
		return r.current.Load()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.loadLocked()
	return r.current.Load()
}

// loadLocked reads the artifact once. Must be called with mu held.
func (r *Repository) loadLocked() {
	if r.loaded.Load() {
		return
	}

	model, err := r.readArtifact()
	switch {
	case err == nil:
		r.current.Store(model)
		metrics.SetModelProfileCount(model.TrainedAtProfileCount)
		r.logger.Info().
			Str("path", r.path).
			Int("trained_at_profile_count", model.TrainedAtProfileCount).
			Msg("model loaded")
	case errors.Is(err, fs.ErrNotExist):
		r.logger.Info().Str("path", r.path).Msg("no model artifact, starting without a model")
	default:
		metrics.ModelLoadFailures.Inc()
		r.logger.Warn().Err(err).Str("path", r.path).Msg("ignoring unreadable model artifact")
	}

	r.loaded.Store(true)
}

// Save validates model, writes it to disk and installs it in the cache.
//
// If the write fails the model is still installed in memory and an error
// wrapping match.ErrPersistence is returned. Models with a lower trained
// profile count than the current one are rejected with match.ErrStaleModel.
func (r *Repository) Save(_ context.Context, model *match.TrainedModel) error {
	if model == nil {
		return fmt.Errorf("%w: nil model", match.ErrInvalidModel)
	}
	if err := model.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.loadLocked()

	if cur := r.current.Load(); cur != nil && model.TrainedAtProfileCount < cur.TrainedAtProfileCount {
		return fmt.Errorf("%w: have %d, got %d", match.ErrStaleModel, cur.TrainedAtProfileCount, model.TrainedAtProfileCount)
	}

	writeErr := r.writeArtifact(model)
	r.current.Store(model)

	if writeErr != nil {
		return fmt.Errorf("%w: %w", match.ErrPersistence, writeErr)
	}

	r.logger.Debug().
		Str("path", r.path).
		Int("trained_at_profile_count", model.TrainedAtProfileCount).
		Msg("model saved")
	return nil
}

// Reset drops the cached model so the next Load reads the artifact again.
func (r *Repository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current.Store(nil)
	r.loaded.Store(false)
}

// readArtifact decodes and verifies the artifact file.
func (r *Repository) readArtifact() (*match.TrainedModel, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, err
	}

	var a artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("%w: decode artifact: %w", match.ErrModelLoad, err)
	}
	if a.Schema != SchemaName {
		return nil, fmt.Errorf("%w: unknown schema %q", match.ErrModelLoad, a.Schema)
	}
	if a.SchemaVersion != SchemaVersion {
		return nil, fmt.Errorf("%w: unsupported schema version %d", match.ErrModelLoad, a.SchemaVersion)
	}
	if !sameFeatures(a.FeatureNames) {
		return nil, fmt.Errorf("%w: feature layout %v does not match %v", match.ErrModelLoad, a.FeatureNames, match.FeatureNames)
	}
	if sum := checksum(a.Model); sum != a.Checksum {
		return nil, fmt.Errorf("%w: checksum mismatch: expected %s, got %s", match.ErrModelLoad, a.Checksum, sum)
	}

	var model match.TrainedModel
	if err := json.Unmarshal(a.Model, &model); err != nil {
		return nil, fmt.Errorf("%w: decode model: %w", match.ErrModelLoad, err)
	}
	if err := model.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", match.ErrModelLoad, err)
	}

	return &model, nil
}

// writeArtifact writes the artifact to a temporary file in the target
// directory and renames it over the previous one.
func (r *Repository) writeArtifact(model *match.TrainedModel) error {
	raw, err := json.Marshal(model)
	if err != nil {
		return fmt.Errorf("encode model: %w", err)
	}

	a := artifact{
		Schema:        SchemaName,
		SchemaVersion: SchemaVersion,
		FeatureNames:  match.FeatureNames[:],
		SavedAt:       time.Now().UTC(),
		Checksum:      checksum(raw),
		Model:         raw,
	}
	// Compact encoding keeps the "model" bytes identical to what was checksummed.
	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("encode artifact: %w", err)
	}

	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName) //nolint:errcheck // best-effort cleanup of an abandoned temp file
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close() //nolint:errcheck // write error is the one worth reporting
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close() //nolint:errcheck // sync error is the one worth reporting
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("replace artifact: %w", err)
	}
	committed = true

	syncDir(dir)
	return nil
}

// syncDir flushes the directory entry after a rename where the platform allows it.
func syncDir(dir string) {
	d, err := os.Open(dir) //nolint:gosec // dir comes from configuration
	if err != nil {
		return
	}
	_ = d.Sync()  //nolint:errcheck // not supported on every platform
	_ = d.Close() //nolint:errcheck // read-only handle
}

func checksum(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

func sameFeatures(names []string) bool {
	if len(names) != match.FeatureCount {
		return false
	}
	for i, n := range names {
		if n != match.FeatureNames[i] {
			return false
		}
	}
	return true
}
