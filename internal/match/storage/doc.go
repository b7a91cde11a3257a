// Roommatch - Roommate Compatibility Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roommatch

// Package storage persists the trained compatibility model.
//
// # Storage Format
//
// The model lives in a single JSON artifact with a self-describing envelope:
//
//	{
//	  "schema": "roommatch.compatibility-model",
//	  "schema_version": 1,
//	  "feature_names": ["sleep_mismatch", ...],
//	  "saved_at": "2026-01-12T12:00:00Z",
//	  "checksum": "<sha256 of model>",
//	  "model": {"scaler": {...}, "regressor": {...}, "trained_at_profile_count": 12, ...}
//	}
//
// The checksum covers the exact bytes of the "model" member. A missing file,
// an unknown schema, a feature layout mismatch, a checksum mismatch or an
// invalid model all load as "no model".
//
// # Thread Safety
//
// Readers see the cached model through an atomic pointer and never block on
// writers. Saves are serialized and replace the file by write-temp-then-rename,
// so a crash mid-write leaves the previous artifact intact.
package storage
