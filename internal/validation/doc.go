// Roommatch - Roommate Compatibility Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roommatch

// Package validation checks request and model structs with
// go-playground/validator v10.
//
// One validator is built on first use and shared. It registers the
// national_phone rule ("03" followed by nine digits, e.g. 03001234567) and
// reports fields by their JSON names, so a client that sent
// "cleanliness_level" sees "cleanliness_level must be at most 5".
//
//	if verr := validation.Struct(&req); verr != nil {
//	    respondAPIError(w, http.StatusBadRequest, verr.ToAPIError())
//	    return
//	}
//
// The database layer calls IsNationalPhone directly so stored numbers obey
// the same rule as API input.
package validation
