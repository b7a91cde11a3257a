// Roommatch - Roommate Compatibility Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roommatch

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Retrain outcomes used as the "outcome" label.
const (
	RetrainSuccess      = "success"
	RetrainPersistError = "persist_error"
	RetrainUnavailable  = "unavailable"
	RetrainThrottled    = "throttled"
	RetrainSkipped      = "skipped"
	RetrainError        = "error"
)

var (
	// Matching Metrics
	MatchSessionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "match_sessions_total",
			Help: "Total number of scoring sessions by scoring path",
		},
		[]string{"path"}, // "heuristic", "learned"
	)

	MatchSessionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "match_session_duration_seconds",
			Help:    "Duration of scoring sessions in seconds, including any inline retrain",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"path"},
	)

	MatchCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "match_candidates",
			Help:    "Number of candidates scored per session",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
	)

	// Model Lifecycle Metrics
	ModelRetrainsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "model_retrains_total",
			Help: "Total number of retrain attempts by outcome",
		},
		[]string{"outcome"},
	)

	ModelTrainingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "model_training_duration_seconds",
			Help:    "Duration of model training and installation in seconds",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 30, 120},
		},
	)

	ModelTrainedProfiles = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "model_trained_profile_count",
			Help: "Profile count the serving model was trained at",
		},
	)

	ModelLoadFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "model_load_failures_total",
			Help: "Total number of unreadable or corrupt model artifacts",
		},
	)

	// Interaction Metrics
	InteractionUpsertsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "interaction_upserts_total",
			Help: "Total number of interaction rows created or refreshed",
		},
	)

	InteractionClicksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interaction_clicks_total",
			Help: "Total number of click-throughs by result",
		},
		[]string{"result"}, // "link", "no_phone", "unknown_target"
	)

	InteractionWriteFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interaction_write_failures_total",
			Help: "Total number of failed or rejected interaction writes",
		},
		[]string{"operation", "reason"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table"},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)
)

// RecordMatchSession records one scoring session.
func RecordMatchSession(path string, candidates int, duration time.Duration) {
	MatchSessionsTotal.WithLabelValues(path).Inc()
	MatchSessionDuration.WithLabelValues(path).Observe(duration.Seconds())
	MatchCandidates.Observe(float64(candidates))
}

// RecordRetrain records a retrain attempt. Duration is only observed for
// attempts that actually trained.
func RecordRetrain(outcome string, duration time.Duration) {
	ModelRetrainsTotal.WithLabelValues(outcome).Inc()
	if outcome == RetrainSuccess || outcome == RetrainPersistError {
		ModelTrainingDuration.Observe(duration.Seconds())
	}
}

// SetModelProfileCount publishes the serving model's trained profile count.
func SetModelProfileCount(n int) {
	ModelTrainedProfiles.Set(float64(n))
}

// RecordInteractionUpserts records n upserted interaction rows.
func RecordInteractionUpserts(n int) {
	InteractionUpsertsTotal.Add(float64(n))
}

// RecordClick records a click-through by result.
func RecordClick(result string) {
	InteractionClicksTotal.WithLabelValues(result).Inc()
}

// RecordInteractionWriteFailure records a failed interaction write.
func RecordInteractionWriteFailure(operation, reason string) {
	InteractionWriteFailures.WithLabelValues(operation, reason).Inc()
}

// SetCircuitBreakerState publishes a breaker's state as 0, 1 or 2.
func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// RecordDBQuery records a database query metric
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table).Inc()
	}
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
