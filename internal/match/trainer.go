// Roommatch - Roommate Compatibility Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roommatch

package match

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/roommatch/internal/models"
)

// ridgeEpsilon is the relative diagonal load added to the normal equations.
// It keeps the system positive definite when features are constant or
// collinear and converges to the minimum-norm least-squares solution.
const ridgeEpsilon = 1e-10

// minScale is the standard deviation below which a feature is treated as constant.
const minScale = 1e-12

// TrainingSet is the design matrix built from every ordered profile pair.
type TrainingSet struct {
	Features []FeatureVector
	Labels   []float64

	// ProfileCount is the number of distinct profiles the pairs were drawn from.
	ProfileCount int
}

// Rows returns the number of training rows.
func (s *TrainingSet) Rows() int {
	return len(s.Labels)
}

// BuildTrainingSet pairs every profile with every other profile in both
// orders and labels each pair with HeuristicScore. Profiles sharing a UserID
// are counted once. Building is O(P^2) in the number of profiles.
func BuildTrainingSet(ctx context.Context, profiles []models.Profile) (*TrainingSet, error) {
	distinct := distinctProfiles(profiles)
	n := len(distinct)
	if n < 2 {
		return nil, ErrTrainingUnavailable
	}

	rows := n * (n - 1)
	set := &TrainingSet{
		Features:     make([]FeatureVector, 0, rows),
		Labels:       make([]float64, 0, rows),
		ProfileCount: n,
	}

	for i := range distinct {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for j := range distinct {
			if i == j {
				continue
			}
			p1, p2 := &distinct[i], &distinct[j]
			set.Features = append(set.Features, Extract(p1, p2))
			set.Labels = append(set.Labels, float64(HeuristicScore(p1, p2)))
		}
	}

	return set, nil
}

// distinctProfiles keeps the first profile seen for each UserID, preserving order.
func distinctProfiles(profiles []models.Profile) []models.Profile {
	seen := make(map[int64]struct{}, len(profiles))
	out := make([]models.Profile, 0, len(profiles))
	for i := range profiles {
		if _, ok := seen[profiles[i].UserID]; ok {
			continue
		}
		seen[profiles[i].UserID] = struct{}{}
		out = append(out, profiles[i])
	}
	return out
}

// Fit fits a standardizing scaler and an ordinary least-squares regressor on set.
func Fit(set *TrainingSet) (*TrainedModel, error) {
	if set == nil || set.Rows() == 0 {
		return nil, ErrTrainingUnavailable
	}

	scaler := fitScaler(set.Features)

	regressor, err := fitLeastSquares(set, &scaler)
	if err != nil {
		return nil, err
	}

	model := &TrainedModel{
		Scaler:                scaler,
		Regressor:             regressor,
		TrainedAtProfileCount: set.ProfileCount,
		TrainingRows:          set.Rows(),
	}
	if err := model.Validate(); err != nil {
		return nil, err
	}
	return model, nil
}

// fitScaler computes per-feature mean and population standard deviation.
func fitScaler(features []FeatureVector) Scaler {
	var s Scaler
	n := float64(len(features))

	for _, x := range features {
		for i := range x {
			s.Mean[i] += x[i]
		}
	}
	for i := range s.Mean {
		s.Mean[i] /= n
	}

	var variance FeatureVector
	for _, x := range features {
		for i := range x {
			d := x[i] - s.Mean[i]
			variance[i] += d * d
		}
	}
	for i := range variance {
		s.Scale[i] = math.Sqrt(variance[i] / n)
		if s.Scale[i] < minScale {
			s.Scale[i] = 1
		}
	}

	return s
}

// fitLeastSquares solves the centered normal equations (Z'Z + eps*n*I) w = Z'(y - ybar)
// over scaled features Z and recovers the intercept from the column means.
func fitLeastSquares(set *TrainingSet, scaler *Scaler) (Regressor, error) {
	rows := set.Rows()
	n := float64(rows)

	scaled := make([]FeatureVector, rows)
	var zMean FeatureVector
	var yMean float64
	for r, x := range set.Features {
		scaled[r] = scaler.Transform(x)
		for i := range zMean {
			zMean[i] += scaled[r][i]
		}
		yMean += set.Labels[r]
	}
	for i := range zMean {
		zMean[i] /= n
	}
	yMean /= n

	A := make([][]float64, FeatureCount)
	for i := range A {
		A[i] = make([]float64, FeatureCount)
	}
	b := make([]float64, FeatureCount)

	for r := range scaled {
		var zc FeatureVector
		for i := range zc {
			zc[i] = scaled[r][i] - zMean[i]
		}
		yc := set.Labels[r] - yMean
		for i := 0; i < FeatureCount; i++ {
			b[i] += zc[i] * yc
			for j := 0; j <= i; j++ {
				A[i][j] += zc[i] * zc[j]
			}
		}
	}

	lambda := ridgeEpsilon * n
	for i := 0; i < FeatureCount; i++ {
		A[i][i] += lambda
		for j := 0; j < i; j++ {
			A[j][i] = A[i][j]
		}
	}

	L, err := choleskyDecomposition(A)
	if err != nil {
		return Regressor{}, fmt.Errorf("solve normal equations: %w", err)
	}
	w := choleskySolve(L, b)

	var reg Regressor
	reg.Intercept = yMean
	for i := 0; i < FeatureCount; i++ {
		reg.Weights[i] = w[i]
		reg.Intercept -= w[i] * zMean[i]
	}
	return reg, nil
}

// Trainer builds and fits models from profile snapshots.
type Trainer struct {
	logger zerolog.Logger
	now    func() time.Time
}

// NewTrainer creates a trainer.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewTrainer(logger zerolog.Logger) *Trainer {
	return &Trainer{
		logger: logger.With().Str("component", "trainer").Logger(),
		now:    time.Now,
	}
}

// Train fits a model on every ordered pair of profiles.
// It returns ErrTrainingUnavailable when fewer than two distinct profiles exist.
func (t *Trainer) Train(ctx context.Context, profiles []models.Profile) (*TrainedModel, error) {
	start := time.Now()

	set, err := BuildTrainingSet(ctx, profiles)
	if err != nil {
		return nil, err
	}

	model, err := Fit(set)
	if err != nil {
		return nil, err
	}
	model.TrainedAt = t.now().UTC()

	t.logger.Info().
		Int("profiles", set.ProfileCount).
		Int("rows", set.Rows()).
		Float64("intercept", model.Regressor.Intercept).
		Dur("duration", time.Since(start)).
		Msg("model fitted")

	return model, nil
}
