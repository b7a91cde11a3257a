// Roommatch - Roommate Compatibility Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roommatch

package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/tomtom215/roommatch/internal/models"
)

// TagNationalPhone is the custom tag for national-format mobile numbers.
const TagNationalPhone = "national_phone"

// nationalPhonePattern matches "03" followed by exactly nine digits.
var nationalPhonePattern = regexp.MustCompile(`^03[0-9]{9}$`)

// IsNationalPhone reports whether s is a national-format mobile number.
func IsNationalPhone(s string) bool {
	return nationalPhonePattern.MatchString(s)
}

// FieldError is one failed rule. Field is the JSON name clients sent.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Param   string `json:"param,omitempty"`
	Message string `json:"message"`
}

// Error is returned by Struct when at least one rule fails.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	messages := make([]string, len(e.Fields))
	for i := range e.Fields {
		messages[i] = e.Fields[i].Message
	}
	return strings.Join(messages, "; ")
}

// HasField reports whether the JSON field failed validation.
func (e *Error) HasField(field string) bool {
	for i := range e.Fields {
		if e.Fields[i].Field == field {
			return true
		}
	}
	return false
}

// ToAPIError converts e into a VALIDATION_ERROR response body listing every failed field.
func (e *Error) ToAPIError() *models.APIError {
	apiErr := &models.APIError{
		Code:    "VALIDATION_ERROR",
		Message: "Validation failed",
	}
	if len(e.Fields) > 0 {
		apiErr.Message = e.Error()
		apiErr.Details = map[string]interface{}{"fields": e.Fields}
	}
	return apiErr
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator with the national_phone rule
// registered and JSON names used in errors.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(jsonFieldName)
		if err := v.RegisterValidation(TagNationalPhone, func(fl validator.FieldLevel) bool {
			// Pointers are dereferenced before the rule runs.
			return IsNationalPhone(fl.Field().String())
		}); err != nil {
			panic(fmt.Sprintf("register %s: %v", TagNationalPhone, err))
		}
		validate = v
	})
	return validate
}

// jsonFieldName names fields by their json tag; "" falls back to the Go name.
func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	return name
}

// Struct validates s. It returns nil when every rule passes.
func Struct(s interface{}) *Error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &Error{Fields: []FieldError{{Field: "", Rule: "invalid", Message: err.Error()}}}
	}

	out := &Error{Fields: make([]FieldError, len(fieldErrs))}
	for i, fe := range fieldErrs {
		out.Fields[i] = FieldError{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Param:   fe.Param(),
			Message: message(fe),
		}
	}
	return out
}

func message(fe validator.FieldError) string {
	field, param := fe.Field(), fe.Param()
	unit := ""
	if fe.Kind() == reflect.String {
		unit = " characters"
	}

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case TagNationalPhone:
		return field + " must be an 11 digit number starting with 03"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(param, " ", ", "))
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s%s", field, param, unit)
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s%s", field, param, unit)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, param)
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
