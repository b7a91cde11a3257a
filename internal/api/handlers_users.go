// Roommatch - Roommate Compatibility Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roommatch

package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/tomtom215/roommatch/internal/database"
	"github.com/tomtom215/roommatch/internal/logging"
	"github.com/tomtom215/roommatch/internal/models"
)

// CreateUser registers an account.
//
// Method: POST
// Path: /api/v1/users
//
// Response:
//   - 201: user created
//   - 400: validation failure
//   - 409: username already taken
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.CreateUserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.store.CreateUser(r.Context(), req.Username, req.FirstName, req.Email)
	switch {
	case errors.Is(err, database.ErrUsernameTaken):
		respondError(w, r, http.StatusConflict, "USERNAME_TAKEN", "Username is already taken", nil)
		return
	case err != nil:
		respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create user", err)
		return
	}

	logging.Ctx(r.Context()).Info().
		Int64("user_id", user.ID).
		Str("email", logging.RedactEmail(user.Email)).
		Msg("User created")
	respondSuccess(w, http.StatusCreated, user, start)
}

// CreateProfile stores the intake quiz for a user.
//
// Method: POST
// Path: /api/v1/users/{userID}/profile
//
// Response:
//   - 201: profile created
//   - 400: validation failure
//   - 404: unknown user
//   - 409: user already has a profile, or the phone number belongs to another profile
func (h *Handler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, ok := requireID(w, r, "userID")
	if !ok {
		return
	}

	var req models.CreateProfileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondAPIError(w, http.StatusBadRequest, &models.APIError{
			Code:    "VALIDATION_ERROR",
			Message: "Invalid JSON body: " + err.Error(),
		})
		return
	}
	// An empty phone means "not shared", not an invalid number.
	if req.PhoneNumber != nil {
		trimmed := strings.TrimSpace(*req.PhoneNumber)
		if trimmed == "" {
			req.PhoneNumber = nil
		} else {
			req.PhoneNumber = &trimmed
		}
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	profile := &models.Profile{
		UserID:           userID,
		SleepSchedule:    req.SleepSchedule,
		CleanlinessLevel: req.CleanlinessLevel,
		NoiseTolerance:   req.NoiseTolerance,
		StudyHabit:       req.StudyHabit,
		PhoneNumber:      req.PhoneNumber,
	}

	if err := h.store.CreateProfile(r.Context(), profile); err != nil {
		h.respondProfileError(w, r, err)
		return
	}

	logging.Ctx(r.Context()).Info().
		Int64("user_id", userID).
		Bool("has_phone", profile.HasPhone()).
		Msg("Profile created")
	respondSuccess(w, http.StatusCreated, profile, start)
}

// UpdatePhone replaces the phone number on an existing profile.
//
// Method: PUT
// Path: /api/v1/users/{userID}/phone
//
// Response:
//   - 200: updated profile
//   - 400: validation failure
//   - 404: user has no profile
//   - 409: number belongs to another profile
func (h *Handler) UpdatePhone(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, ok := requireID(w, r, "userID")
	if !ok {
		return
	}

	var req models.UpdatePhoneRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondAPIError(w, http.StatusBadRequest, &models.APIError{
			Code:    "VALIDATION_ERROR",
			Message: "Invalid JSON body: " + err.Error(),
		})
		return
	}
	req.PhoneNumber = strings.TrimSpace(req.PhoneNumber)
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	if err := h.store.UpdatePhone(r.Context(), userID, req.PhoneNumber); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondError(w, r, http.StatusNotFound, "PROFILE_NOT_FOUND", "Complete the intake quiz first", nil)
			return
		}
		h.respondProfileError(w, r, err)
		return
	}

	profile, err := h.store.GetProfile(r.Context(), userID)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load profile", err)
		return
	}

	logging.Ctx(r.Context()).Info().
		Int64("user_id", userID).
		Str("phone", logging.RedactPhone(req.PhoneNumber)).
		Msg("Phone number updated")
	respondSuccess(w, http.StatusOK, profile, start)
}

// respondProfileError maps profile store sentinels to responses.
func (h *Handler) respondProfileError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		respondError(w, r, http.StatusNotFound, "USER_NOT_FOUND", "User not found", nil)
	case errors.Is(err, database.ErrProfileExists):
		respondError(w, r, http.StatusConflict, "PROFILE_EXISTS", "User already has a profile", nil)
	case errors.Is(err, database.ErrPhoneInUse):
		respondError(w, r, http.StatusConflict, "PHONE_IN_USE", "Phone number is already registered", nil)
	case errors.Is(err, database.ErrInvalidPhone):
		respondError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Phone number must match 03XXXXXXXXX", nil)
	default:
		respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to save profile", err)
	}
}
