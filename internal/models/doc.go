// Roommatch - Roommate Compatibility Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roommatch

/*
Package models defines data structures shared across the Roommatch service.

Key Components:

  - User: account owner of a profile (display name source)
  - Profile: intake quiz answers used for compatibility scoring
  - Match: one ranked entry of a dashboard session
  - Interaction: viewed/clicked record per (viewer, target) pair
  - MetricsSnapshot: derived engine evaluation figures
  - APIResponse: standardized HTTP response envelope

Profiles are ordered by creation. That order is the "input order" used to break
ties when ranking candidates, so every query that lists profiles must preserve it.
*/
package models
