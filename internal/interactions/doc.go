// Roommatch - Roommate Compatibility Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roommatch

/*
Package interactions records what viewers were shown and what they clicked,
and derives the engine's evaluation metrics from those records.

Tracker implements match.ViewRecorder. Every dashboard session's matches are
upserted as (viewer, target) interactions; a click-through marks the pair
clicked and yields a messaging deep link built from the target's phone
number. Writes go through a gobreaker circuit breaker so a failing store
stops being hammered by every render.

Aggregator computes the operator metrics snapshot:

	click_through_rate      = clicked / total interactions
	profile_completion_rate = profiles / users
	average_top_score       = mean over viewers of their best match score

Every ratio is 0 when its denominator is 0.
*/
package interactions
