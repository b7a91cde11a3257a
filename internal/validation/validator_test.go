// Roommatch - Roommate Compatibility Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roommatch

package validation

import (
	"testing"

	"github.com/tomtom215/roommatch/internal/models"
)

func TestValidator_Shared(t *testing.T) {
	if Validator() != Validator() {
		t.Error("Validator() should return the same instance")
	}
}

func TestIsNationalPhone(t *testing.T) {
	tests := []struct {
		phone string
		want  bool
	}{
		{phone: "03001234567", want: true},
		{phone: "03999999999", want: true},
		{phone: "0300123456", want: false},
		{phone: "030012345678", want: false},
		{phone: "04001234567", want: false},
		{phone: "+923001234567", want: false},
		{phone: "0300-1234567", want: false},
		{phone: "0300123456a", want: false},
		{phone: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			if got := IsNationalPhone(tt.phone); got != tt.want {
				t.Errorf("IsNationalPhone(%q) = %v, want %v", tt.phone, got, tt.want)
			}
		})
	}
}

func strPtr(s string) *string {
	return &s
}

func validProfileRequest() models.CreateProfileRequest {
	return models.CreateProfileRequest{
		SleepSchedule:    models.SleepEarly,
		CleanlinessLevel: 3,
		NoiseTolerance:   4,
		StudyHabit:       models.StudyMix,
		PhoneNumber:      strPtr("03001234567"),
	}
}

func TestStruct_ProfileRequest(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(r *models.CreateProfileRequest)
		wantField string
	}{
		{name: "valid", mutate: func(*models.CreateProfileRequest) {}},
		{name: "no phone", mutate: func(r *models.CreateProfileRequest) { r.PhoneNumber = nil }},
		{name: "late sleeper", mutate: func(r *models.CreateProfileRequest) { r.SleepSchedule = models.SleepLate }},
		{name: "unknown sleep schedule", mutate: func(r *models.CreateProfileRequest) { r.SleepSchedule = "Noon" }, wantField: "sleep_schedule"},
		{name: "missing study habit", mutate: func(r *models.CreateProfileRequest) { r.StudyHabit = "" }, wantField: "study_habit"},
		{name: "cleanliness below range", mutate: func(r *models.CreateProfileRequest) { r.CleanlinessLevel = 0 }, wantField: "cleanliness_level"},
		{name: "noise above range", mutate: func(r *models.CreateProfileRequest) { r.NoiseTolerance = 6 }, wantField: "noise_tolerance"},
		{name: "malformed phone", mutate: func(r *models.CreateProfileRequest) { r.PhoneNumber = strPtr("3001234567") }, wantField: "phone_number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validProfileRequest()
			tt.mutate(&req)

			verr := Struct(&req)
			if tt.wantField == "" {
				if verr != nil {
					t.Fatalf("Struct() = %v, want nil", verr)
				}
				return
			}
			if verr == nil {
				t.Fatalf("Struct() = nil, want error on %s", tt.wantField)
			}
			if !verr.HasField(tt.wantField) {
				t.Errorf("fields %+v do not include %s", verr.Fields, tt.wantField)
			}
		})
	}
}

func TestStruct_UpdatePhoneRequest(t *testing.T) {
	if verr := Struct(&models.UpdatePhoneRequest{PhoneNumber: "03121234567"}); verr != nil {
		t.Errorf("Struct() = %v, want nil", verr)
	}

	verr := Struct(&models.UpdatePhoneRequest{})
	if verr == nil || !verr.HasField("phone_number") {
		t.Fatalf("Struct() = %v, want phone_number error", verr)
	}
	if verr.Fields[0].Rule != "required" {
		t.Errorf("rule = %q, want required", verr.Fields[0].Rule)
	}
}

func TestStruct_CreateUserRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     models.CreateUserRequest
		wantErr bool
	}{
		{name: "username only", req: models.CreateUserRequest{Username: "ayesha"}},
		{name: "all fields", req: models.CreateUserRequest{Username: "ayesha", FirstName: "Ayesha", Email: "ayesha@example.com"}},
		{name: "short username", req: models.CreateUserRequest{Username: "ab"}, wantErr: true},
		{name: "bad email", req: models.CreateUserRequest{Username: "ayesha", Email: "not-an-email"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := Struct(&tt.req)
			if (verr != nil) != tt.wantErr {
				t.Errorf("Struct() = %v, wantErr %v", verr, tt.wantErr)
			}
		})
	}
}

func TestStruct_Messages(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *models.CreateProfileRequest)
		want   string
	}{
		{name: "max on int", mutate: func(r *models.CreateProfileRequest) { r.CleanlinessLevel = 9 }, want: "cleanliness_level must be at most 5"},
		{name: "min on int", mutate: func(r *models.CreateProfileRequest) { r.NoiseTolerance = 0 }, want: "noise_tolerance must be at least 1"},
		{name: "oneof", mutate: func(r *models.CreateProfileRequest) { r.StudyHabit = "Afternoon" }, want: "study_habit must be one of: Morning, Night, Mix"},
		{name: "phone", mutate: func(r *models.CreateProfileRequest) { r.PhoneNumber = strPtr("12345") }, want: "phone_number must be an 11 digit number starting with 03"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validProfileRequest()
			tt.mutate(&req)

			verr := Struct(&req)
			if verr == nil {
				t.Fatal("expected validation error")
			}
			if got := verr.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStruct_StringLengthMessage(t *testing.T) {
	verr := Struct(&models.CreateUserRequest{Username: "ab"})
	if verr == nil {
		t.Fatal("expected validation error")
	}
	if got, want := verr.Error(), "username must be at least 3 characters"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestToAPIError(t *testing.T) {
	t.Run("multiple fields", func(t *testing.T) {
		req := validProfileRequest()
		req.CleanlinessLevel = 7
		req.SleepSchedule = ""

		apiErr := Struct(&req).ToAPIError()
		if apiErr.Code != "VALIDATION_ERROR" {
			t.Errorf("Code = %q, want VALIDATION_ERROR", apiErr.Code)
		}
		fields, ok := apiErr.Details["fields"].([]FieldError)
		if !ok || len(fields) != 2 {
			t.Fatalf("Details[fields] = %v, want 2 entries", apiErr.Details["fields"])
		}
		if apiErr.Message != "sleep_schedule is required; cleanliness_level must be at most 5" {
			t.Errorf("Message = %q", apiErr.Message)
		}
	})

	t.Run("empty", func(t *testing.T) {
		apiErr := (&Error{}).ToAPIError()
		if apiErr.Message != "Validation failed" || apiErr.Details != nil {
			t.Errorf("apiErr = %+v", apiErr)
		}
	})
}

func TestStruct_ProfileModel(t *testing.T) {
	p := models.Profile{
		UserID:           4,
		DisplayName:      "x",
		SleepSchedule:    models.SleepLate,
		CleanlinessLevel: 5,
		NoiseTolerance:   1,
		StudyHabit:       models.StudyNight,
	}
	if verr := Struct(&p); verr != nil {
		t.Errorf("Struct() = %v, want nil", verr)
	}

	p.UserID = 0
	if verr := Struct(&p); verr == nil || !verr.HasField("user_id") {
		t.Errorf("Struct() = %v, want user_id error", verr)
	}
}
