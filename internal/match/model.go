// Roommatch - Roommate Compatibility Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roommatch

package match

import (
	"fmt"
	"math"
	"time"
)

// Scaler standardizes features to zero mean and unit variance.
type Scaler struct {
	// Mean is the per-feature mean over the training matrix.
	Mean FeatureVector `json:"mean"`

	// Scale is the per-feature population standard deviation.
	// Constant features get a scale of 1 so they transform to 0.
	Scale FeatureVector `json:"scale"`
}

// Transform returns the standardized copy of x.
func (s *Scaler) Transform(x FeatureVector) FeatureVector {
	var out FeatureVector
	for i := range x {
		out[i] = (x[i] - s.Mean[i]) / s.Scale[i]
	}
	return out
}

// Regressor is a linear model over scaled features.
type Regressor struct {
	Weights   FeatureVector `json:"weights"`
	Intercept float64       `json:"intercept"`
}

// Predict returns the raw linear prediction for already scaled features.
func (r *Regressor) Predict(z FeatureVector) float64 {
	y := r.Intercept
	for i := range z {
		y += r.Weights[i] * z[i]
	}
	return y
}

// TrainedModel is the fitted scaler and regressor plus the profile count it
// was trained at.
type TrainedModel struct {
	Scaler    Scaler    `json:"scaler"`
	Regressor Regressor `json:"regressor"`

	// TrainedAtProfileCount is the number of distinct profiles in the training set.
	TrainedAtProfileCount int `json:"trained_at_profile_count"`

	// TrainingRows is the number of ordered pairs the model was fitted on.
	TrainingRows int `json:"training_rows"`

	// TrainedAt is when training finished.
	TrainedAt time.Time `json:"trained_at"`
}

// Predict returns the unclamped prediction for a raw feature vector.
func (m *TrainedModel) Predict(x FeatureVector) float64 {
	return m.Regressor.Predict(m.Scaler.Transform(x))
}

// Score returns the prediction clamped to [0, 100] and rounded to an integer.
func (m *TrainedModel) Score(x FeatureVector) int {
	y := m.Predict(x)
	switch {
	case math.IsNaN(y), y < MinScore:
		y = MinScore
	case y > MaxScore:
		y = MaxScore
	}
	return int(math.Round(y))
}

// Validate checks that every parameter is finite, every scale is positive and
// the profile count is one that training can produce.
func (m *TrainedModel) Validate() error {
	if m.TrainedAtProfileCount < 2 {
		return fmt.Errorf("%w: trained_at_profile_count must be at least 2, got %d", ErrInvalidModel, m.TrainedAtProfileCount)
	}
	for i := 0; i < FeatureCount; i++ {
		if !isFinite(m.Scaler.Mean[i]) || !isFinite(m.Scaler.Scale[i]) || !isFinite(m.Regressor.Weights[i]) {
			return fmt.Errorf("%w: non-finite parameter for feature %s", ErrInvalidModel, FeatureNames[i])
		}
		if m.Scaler.Scale[i] <= 0 {
			return fmt.Errorf("%w: scale for feature %s must be positive, got %f", ErrInvalidModel, FeatureNames[i], m.Scaler.Scale[i])
		}
	}
	if !isFinite(m.Regressor.Intercept) {
		return fmt.Errorf("%w: non-finite intercept", ErrInvalidModel)
	}
	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
