// Roommatch - Roommate Compatibility Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roommatch

// Package main is the entry point for the Roommatch server.
//
// Roommatch pairs students with compatible roommates from a short intake
// quiz. Each dashboard session scores every other profile against the
// viewer, with a rule-based heuristic until enough profiles exist to fit a
// regression model, and returns the top five with a WhatsApp deep link for
// those who shared a phone number.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: defaults, config.yaml, then environment (Koanf v2)
//  2. Logging: zerolog with the configured level and format
//  3. Database: DuckDB holding users, profiles and interactions
//  4. Model repository: the trained model artifact on disk
//  5. Match engine: heuristic and learned scoring with the retrain trigger
//  6. Interaction tracker: circuit-breaker guarded view/click recording
//  7. HTTP server: chi router under /api/v1 plus /metrics
//  8. Supervisor tree: retrain service and HTTP server under suture
//
// # Configuration
//
// Common environment variables:
//
//	HTTP_PORT=8080
//	DUCKDB_PATH=/data/roommatch.duckdb
//	MODEL_PATH=/data/model.json
//	MATCH_ACTIVATION_THRESHOLD=1
//	MATCH_RETRAIN_INTERVAL=5
//	MATCH_ASYNC_RETRAIN=false
//	ADMIN_TOKEN=...
//	LOG_LEVEL=info
//
// See internal/config for the full list.
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the root context. The supervisor stops the HTTP
// server (draining in-flight requests for HTTP_SHUTDOWN_TIMEOUT) and the
// retrain service, then the database is checkpointed and closed.
//
// # Example Usage
//
//	export DUCKDB_PATH=./data/roommatch.duckdb
//	export MODEL_PATH=./data/model.json
//	export ADMIN_TOKEN=$(openssl rand -hex 24)
//	./roommatch
package main
