// Roommatch - Roommate Compatibility Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roommatch

/*
Package database provides DuckDB-backed storage for users, profiles and
interactions.

# Tables

	users         id (sequence), username (unique), first_name, email, created_at
	profiles      user_id (primary key), quiz answers, phone_number, created_at
	interactions  (viewer_id, target_id) primary key, match_score,
	              whatsapp_clicked, last_updated

Interaction uniqueness is enforced by the primary key and INSERT ... ON
CONFLICT DO UPDATE, so concurrent upserts for the same pair converge to one
row carrying the latest score. A per-viewer mutex serializes a viewer's batch
to avoid DuckDB transaction conflicts; conflicts that still occur are retried
with exponential backoff.

Phone numbers are unique across profiles. The check runs in Go under a write
lock because DuckDB unique indexes reject some valid in-place updates.

# Usage

	db, err := database.New(&cfg.Database)
	if err != nil {
	    return err
	}
	defer db.Close()

	profiles, err := db.ListProfiles(ctx)

DB satisfies match.ProfileSource and the interaction store used by the
interactions package.
*/
package database
