// Roommatch - Roommate Compatibility Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roommatch

/*
Package logging provides centralized zerolog-based logging for Roommatch.

Every component logs through zerolog. Long-lived components receive a
zerolog.Logger by value and derive a child with a "component" field;
request-scoped code uses Ctx to pick up the request and correlation IDs
set by the HTTP middleware.

# Quick Start

	logging.Init(logging.Config{Level: "info", Format: "json"})

	logging.Info().Str("addr", addr).Msg("Server starting")
	logging.Ctx(ctx).Warn().Err(err).Msg("Retrain failed")

	engineLogger := logging.WithComponent("match-engine")

# Supervisor Integration

suture logs through log/slog. NewSlogLogger bridges slog records into the
global zerolog logger so supervisor events share the same output.

# Personal Data

Phone numbers, emails and tokens must pass through RedactPhone, RedactEmail
or RedactToken before they are attached to a log event.
*/
package logging
