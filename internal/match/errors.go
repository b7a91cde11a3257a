// Roommatch - Roommate Compatibility Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roommatch

package match

import "errors"

var (
	// ErrTrainingUnavailable indicates there are fewer than two distinct profiles to pair.
	ErrTrainingUnavailable = errors.New("training unavailable: at least 2 distinct profiles required")

	// ErrModelLoad indicates the persisted model artifact is missing, unreadable or corrupt.
	ErrModelLoad = errors.New("model load failure")

	// ErrPersistence indicates the model artifact could not be written.
	ErrPersistence = errors.New("model persistence failure")

	// ErrInvalidModel indicates a model with non-finite or out-of-range parameters.
	ErrInvalidModel = errors.New("invalid model")

	// ErrStaleModel indicates a save attempt with a lower trained profile count
	// than the model currently held.
	ErrStaleModel = errors.New("stale model: trained profile count would decrease")

	// ErrProfileNotFound indicates the viewer has not completed the intake quiz.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrRetrainThrottled indicates a retrain attempt was refused by the rate limiter.
	ErrRetrainThrottled = errors.New("retrain throttled")
)
