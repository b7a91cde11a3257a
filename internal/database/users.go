// Roommatch - Roommate Compatibility Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roommatch

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/roommatch/internal/models"
)

// CreateUser registers a user and returns it with its assigned ID.
func (db *DB) CreateUser(ctx context.Context, username, firstName, email string) (user *models.User, err error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() { observe("create_user", "users", start, err) }()

	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}

	user = &models.User{
		Username:  username,
		FirstName: strings.TrimSpace(firstName),
		Email:     strings.TrimSpace(email),
		CreatedAt: time.Now().UTC(),
	}

	err = db.conn.QueryRowContext(ctx, `
		INSERT INTO users (username, first_name, email, created_at)
		VALUES (?, ?, ?, ?)
		RETURNING id`,
		user.Username, user.FirstName, user.Email, user.CreatedAt,
	).Scan(&user.ID)
	if err != nil {
		if isConstraintViolation(err) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// GetUser returns the user with the given ID, or ErrNotFound.
func (db *DB) GetUser(ctx context.Context, id int64) (user *models.User, err error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() { observe("get_user", "users", start, err) }()

	user = &models.User{}
	err = db.conn.QueryRowContext(ctx, `
		SELECT id, username, first_name, email, created_at
		FROM users WHERE id = ?`, id,
	).Scan(&user.ID, &user.Username, &user.FirstName, &user.Email, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	return user, nil
}

// CountUsers returns the number of registered users.
func (db *DB) CountUsers(ctx context.Context) (n int, err error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() { observe("count", "users", start, err) }()

	if err = db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return n, nil
}
