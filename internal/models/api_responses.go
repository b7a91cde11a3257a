// Roommatch - Roommate Compatibility Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roommatch

package models

import (
	"time"
)

// APIResponse is the response envelope used by every HTTP endpoint.
//
// Status field values:
//   - "success": Request completed successfully, see Data field
//   - "error": Request failed, see Error field for details
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {
//	    "code": "VALIDATION_ERROR",
//	    "message": "CleanlinessLevel must be at most 5",
//	    "details": {"field": "CleanlinessLevel"}
//	  },
//	  "metadata": {"timestamp": "2026-01-12T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
}

// APIError is a machine-readable error with optional details.
//
// Common error codes:
//   - VALIDATION_ERROR: Invalid input parameters
//   - NOT_FOUND: Resource doesn't exist
//   - CONFLICT: Uniqueness rule violated (username, phone number, existing profile)
//   - DATABASE_ERROR: Query execution failure
//   - UNAUTHORIZED: Missing or wrong admin token
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// CreateUserRequest is the body of POST /api/v1/users.
type CreateUserRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=150"`
	FirstName string `json:"first_name" validate:"max=150"`
	Email     string `json:"email" validate:"omitempty,email"`
}

// CreateProfileRequest is the body of POST /api/v1/users/{userID}/profile.
type CreateProfileRequest struct {
	SleepSchedule    string  `json:"sleep_schedule" validate:"required,oneof=Early Late"`
	CleanlinessLevel int     `json:"cleanliness_level" validate:"min=1,max=5"`
	NoiseTolerance   int     `json:"noise_tolerance" validate:"min=1,max=5"`
	StudyHabit       string  `json:"study_habit" validate:"required,oneof=Morning Night Mix"`
	PhoneNumber      *string `json:"phone_number" validate:"omitempty,national_phone"`
}

// UpdatePhoneRequest is the body of PUT /api/v1/users/{userID}/phone.
type UpdatePhoneRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required,national_phone"`
}

// ConnectResponse is returned by the click-tracking endpoint.
// Link is nil when the target has no phone number or is unknown.
type ConnectResponse struct {
	TargetUserID int64   `json:"target_user_id"`
	Link         *string `json:"link"`
}

// HealthStatus is the body of GET /api/v1/health.
type HealthStatus struct {
	Status            string  `json:"status"`
	Version           string  `json:"version"`
	DatabaseConnected bool    `json:"database_connected"`
	Uptime            float64 `json:"uptime"`
}
