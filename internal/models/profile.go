// Roommatch - Roommate Compatibility Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roommatch

package models

import "time"

// Sleep schedule values.
const (
	SleepEarly = "Early"
	SleepLate  = "Late"
)

// Study habit values.
const (
	StudyMorning = "Morning"
	StudyNight   = "Night"
	StudyMix     = "Mix"
)

// Attribute level bounds for cleanliness and noise tolerance.
const (
	MinLevel = 1
	MaxLevel = 5
)

// User is the account that owns a profile.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username" validate:"required,min=3,max=150"`
	FirstName string    `json:"first_name" validate:"max=150"`
	Email     string    `json:"email" validate:"omitempty,email"`
	CreatedAt time.Time `json:"created_at"`
}

// DisplayName returns the first name, or the username when no first name is set.
func (u *User) DisplayName() string {
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.Username
}

// Profile holds a user's intake quiz answers.
type Profile struct {
	// UserID is the owning user (one profile per user).
	UserID int64 `json:"user_id" validate:"required,gt=0"`

	// DisplayName is joined from the owning user; it is not stored on the profile.
	DisplayName string `json:"display_name,omitempty" validate:"-"`

	SleepSchedule    string `json:"sleep_schedule" validate:"required,oneof=Early Late"`
	CleanlinessLevel int    `json:"cleanliness_level" validate:"min=1,max=5"`
	NoiseTolerance   int    `json:"noise_tolerance" validate:"min=1,max=5"`
	StudyHabit       string `json:"study_habit" validate:"required,oneof=Morning Night Mix"`

	// PhoneNumber is optional; nil means the user has not shared one.
	PhoneNumber *string `json:"phone_number" validate:"omitempty,national_phone"`

	CreatedAt time.Time `json:"created_at"`
}

// HasPhone reports whether the profile carries a non-empty phone number.
func (p *Profile) HasPhone() bool {
	return p.PhoneNumber != nil && *p.PhoneNumber != ""
}
