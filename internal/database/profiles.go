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
	"time"

	"github.com/tomtom215/roommatch/internal/models"
	"github.com/tomtom215/roommatch/internal/validation"
)

// ErrInvalidPhone is returned when a phone number is not an 11 digit national number.
var ErrInvalidPhone = errors.New("phone number must be an 11 digit number starting with 03")

const profileColumns = `
	p.user_id,
	COALESCE(NULLIF(u.first_name, ''), u.username),
	p.sleep_schedule,
	p.cleanliness_level,
	p.noise_tolerance,
	p.study_habit,
	p.phone_number,
	p.created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (models.Profile, error) {
	var (
		p     models.Profile
		phone sql.NullString
	)
	err := row.Scan(
		&p.UserID,
		&p.DisplayName,
		&p.SleepSchedule,
		&p.CleanlinessLevel,
		&p.NoiseTolerance,
		&p.StudyHabit,
		&phone,
		&p.CreatedAt,
	)
	if err != nil {
		return p, err
	}
	if phone.Valid && phone.String != "" {
		number := phone.String
		p.PhoneNumber = &number
	}
	return p, nil
}

// CreateProfile stores a user's intake quiz answers. Each user has at most one
// profile and phone numbers are unique across profiles.
func (db *DB) CreateProfile(ctx context.Context, profile *models.Profile) (err error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() { observe("create_profile", "profiles", start, err) }()

	if profile.HasPhone() && !validation.IsNationalPhone(*profile.PhoneNumber) {
		return ErrInvalidPhone
	}

	db.profileMu.Lock()
	defer db.profileMu.Unlock()

	user, err := db.GetUser(ctx, profile.UserID)
	if err != nil {
		return err
	}

	var exists bool
	if err = db.conn.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM profiles WHERE user_id = ?)`, profile.UserID,
	).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check profile: %w", err)
	}
	if exists {
		return ErrProfileExists
	}

	var phone sql.NullString
	if profile.HasPhone() {
		if err = db.checkPhoneAvailable(ctx, *profile.PhoneNumber, profile.UserID); err != nil {
			return err
		}
		phone = sql.NullString{String: *profile.PhoneNumber, Valid: true}
	}

	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now().UTC()
	}

	_, err = db.conn.ExecContext(ctx, `
		INSERT INTO profiles (
			user_id, sleep_schedule, cleanliness_level, noise_tolerance,
			study_habit, phone_number, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		profile.UserID, profile.SleepSchedule, profile.CleanlinessLevel,
		profile.NoiseTolerance, profile.StudyHabit, phone, profile.CreatedAt,
	)
	if err != nil {
		switch {
		case isPhoneConflict(err):
			return ErrPhoneInUse
		case isConstraintViolation(err):
			return ErrProfileExists
		}
		return fmt.Errorf("failed to create profile: %w", err)
	}

	profile.DisplayName = user.DisplayName()
	return nil
}

// UpdatePhone sets the phone number on an existing profile.
func (db *DB) UpdatePhone(ctx context.Context, userID int64, phone string) (err error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() { observe("update_phone", "profiles", start, err) }()

	if !validation.IsNationalPhone(phone) {
		return ErrInvalidPhone
	}

	db.profileMu.Lock()
	defer db.profileMu.Unlock()

	if err = db.checkPhoneAvailable(ctx, phone, userID); err != nil {
		return err
	}

	result, err := db.conn.ExecContext(ctx,
		`UPDATE profiles SET phone_number = ? WHERE user_id = ?`, phone, userID)
	if err != nil {
		if isPhoneConflict(err) {
			return ErrPhoneInUse
		}
		return fmt.Errorf("failed to update phone: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// checkPhoneAvailable returns ErrPhoneInUse when a profile other than
// ownerID holds phone. Callers must hold profileMu. The unique index on
// phone_number also rejects duplicates written by another process.
func (db *DB) checkPhoneAvailable(ctx context.Context, phone string, ownerID int64) error {
	var taken bool
	err := db.conn.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM profiles WHERE phone_number = ? AND user_id <> ?)`,
		phone, ownerID,
	).Scan(&taken)
	if err != nil {
		return fmt.Errorf("failed to check phone number: %w", err)
	}
	if taken {
		return ErrPhoneInUse
	}
	return nil
}

// GetProfile returns a user's profile joined with their display name, or ErrNotFound.
func (db *DB) GetProfile(ctx context.Context, userID int64) (profile *models.Profile, err error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() { observe("get_profile", "profiles", start, err) }()

	row := db.conn.QueryRowContext(ctx, `
		SELECT `+profileColumns+`
		FROM profiles p
		JOIN users u ON u.id = p.user_id
		WHERE p.user_id = ?`, userID)

	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile %d: %w", userID, err)
	}
	return &p, nil
}

// ListProfiles returns every profile in creation order.
func (db *DB) ListProfiles(ctx context.Context) (profiles []models.Profile, err error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() { observe("list_profiles", "profiles", start, err) }()

	rows, err := db.conn.QueryContext(ctx, `
		SELECT `+profileColumns+`
		FROM profiles p
		JOIN users u ON u.id = p.user_id
		ORDER BY p.seq, p.user_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer closeQuietly(rows)

	profiles = []models.Profile{}
	for rows.Next() {
		p, scanErr := scanProfile(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", scanErr)
		}
		profiles = append(profiles, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate profiles: %w", err)
	}
	return profiles, nil
}

// CountProfiles returns the number of completed profiles.
func (db *DB) CountProfiles(ctx context.Context) (n int, err error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() { observe("count", "profiles", start, err) }()

	if err = db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM profiles`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count profiles: %w", err)
	}
	return n, nil
}
