// Roommatch - Roommate Compatibility Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roommatch

package database

import (
	"context"
	"fmt"
)

// schemaStatements are applied in order on every startup.
var schemaStatements = []string{
	`CREATE SEQUENCE IF NOT EXISTS users_id_seq START 1`,
	`CREATE SEQUENCE IF NOT EXISTS profiles_seq START 1`,

	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT PRIMARY KEY DEFAULT nextval('users_id_seq'),
		username VARCHAR NOT NULL UNIQUE,
		first_name VARCHAR NOT NULL DEFAULT '',
		email VARCHAR NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL
	)`,

	// seq records creation order, which ranking uses to break score ties.
	`CREATE TABLE IF NOT EXISTS profiles (
		user_id BIGINT PRIMARY KEY,
		seq BIGINT NOT NULL DEFAULT nextval('profiles_seq'),
		sleep_schedule VARCHAR NOT NULL,
		cleanliness_level INTEGER NOT NULL CHECK (cleanliness_level BETWEEN 1 AND 5),
		noise_tolerance INTEGER NOT NULL CHECK (noise_tolerance BETWEEN 1 AND 5),
		study_habit VARCHAR NOT NULL,
		phone_number VARCHAR,
		created_at TIMESTAMP NOT NULL
	)`,

	// NULLs never conflict, so profiles without a phone are unaffected.
	`CREATE UNIQUE INDEX IF NOT EXISTS profiles_phone_number_idx ON profiles (phone_number)`,

	`CREATE TABLE IF NOT EXISTS interactions (
		viewer_id BIGINT NOT NULL,
		target_id BIGINT NOT NULL,
		match_score INTEGER NOT NULL,
		whatsapp_clicked BOOLEAN NOT NULL DEFAULT false,
		last_updated TIMESTAMP NOT NULL,
		PRIMARY KEY (viewer_id, target_id)
	)`,
}

func (db *DB) createTables(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
