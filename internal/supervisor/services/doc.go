// Roommatch - Roommate Compatibility Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roommatch

// Package services adapts Roommatch components to suture.Service.
//
//   - HTTPServerService: net/http server with graceful shutdown
//   - RetrainService: background model retraining on a schedule and on
//     engine signals
package services
