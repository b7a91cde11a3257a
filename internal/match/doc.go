// Roommatch - Roommate Compatibility Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roommatch

/*
Package match implements roommate compatibility scoring and ranking.

# Scoring Paths

Two scorers rank candidates for a viewer:

  - Heuristic: a deterministic penalty score (see HeuristicScore). It is also
    the label generator for training data.
  - Learned: a standardizing scaler followed by an ordinary least-squares
    regressor over the six-element FeatureVector, clamped to [0, 100].

A single dashboard session always uses exactly one path for every candidate.

# Model Lifecycle

The Engine keeps one TrainedModel behind a ModelStore. A model is retrained
from every ordered profile pair when the profile count has grown by at least
Config.RetrainInterval since the last successful training. Retraining runs
under a single-flight guard, either inline with the session that noticed the
trigger (default) or on the background RetrainService when
Config.AsyncRetrain is set.

# Thread Safety

Engine is safe for concurrent use. Sessions never observe a partially
replaced model: the ModelStore swaps whole models atomically.
*/
package match
