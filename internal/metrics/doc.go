// Roommatch - Roommate Compatibility Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roommatch

/*
Package metrics provides Prometheus metrics collection and export for observability.

# Overview

The package provides metrics for:
  - Scoring sessions by path (heuristic or learned)
  - Model retraining outcomes and duration
  - Model artifact load failures
  - Interaction upserts and click-throughs
  - Circuit breaker state transitions
  - DuckDB query performance
  - HTTP request latency and throughput

# Metrics Endpoint

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8080/metrics

All collectors are registered on the default registry through promauto at
package initialization.
*/
package metrics
