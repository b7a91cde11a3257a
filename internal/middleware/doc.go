// Roommatch - Roommate Compatibility Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roommatch

/*
Package middleware provides net/http middleware shared by the API router.

  - RequestID: X-Request-ID propagation plus request and correlation IDs in
    the logging context
  - PrometheusMetrics: request count, latency and in-flight gauge, labelled by
    chi route pattern so user IDs in paths do not explode label cardinality
  - AdminToken: guards operator endpoints with a shared X-Admin-Token header

All middleware has the func(http.Handler) http.Handler shape used by chi's
r.Use.
*/
package middleware
