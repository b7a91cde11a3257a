// Roommatch - Roommate Compatibility Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roommatch

package database

import (
	"errors"
	"io"
	"strings"
)

var (
	// ErrNotFound is returned when a user or profile does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUsernameTaken is returned when a username is already registered.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrProfileExists is returned when the user already completed the quiz.
	ErrProfileExists = errors.New("profile already exists")

	// ErrPhoneInUse is returned when another profile holds the phone number.
	ErrPhoneInUse = errors.New("phone number already in use")
)

// closeQuietly closes a resource in error paths where Close errors are not actionable.
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close()
	}
}

// isTransactionConflict checks if an error is a DuckDB transaction conflict
func isTransactionConflict(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "Transaction conflict") ||
		strings.Contains(msg, "Conflict on update")
}

// isConstraintViolation checks if an error is a DuckDB primary key or unique violation
func isConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "Constraint Error") ||
		strings.Contains(msg, "violates primary key") ||
		strings.Contains(msg, "violates unique constraint")
}

// isPhoneConflict checks if an error is a unique violation on profiles.phone_number
func isPhoneConflict(err error) bool {
	return isConstraintViolation(err) && strings.Contains(err.Error(), "phone_number")
}
