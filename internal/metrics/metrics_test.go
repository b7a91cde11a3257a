// Roommatch - Roommate Compatibility Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roommatch

package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordMatchSession(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		candidates int
	}{
		{name: "heuristic session", path: "heuristic", candidates: 3},
		{name: "learned session", path: "learned", candidates: 40},
		{name: "empty candidate list", path: "heuristic", candidates: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(MatchSessionsTotal.WithLabelValues(tt.path))
			RecordMatchSession(tt.path, tt.candidates, time.Millisecond)
			after := testutil.ToFloat64(MatchSessionsTotal.WithLabelValues(tt.path))
			if after != before+1 {
				t.Errorf("match_sessions_total{path=%q} = %v, want %v", tt.path, after, before+1)
			}
		})
	}
}

func TestRecordRetrain(t *testing.T) {
	outcomes := []string{
		RetrainSuccess,
		RetrainPersistError,
		RetrainUnavailable,
		RetrainThrottled,
		RetrainSkipped,
		RetrainError,
	}

	for _, outcome := range outcomes {
		t.Run(outcome, func(t *testing.T) {
			before := testutil.ToFloat64(ModelRetrainsTotal.WithLabelValues(outcome))
			RecordRetrain(outcome, 10*time.Millisecond)
			after := testutil.ToFloat64(ModelRetrainsTotal.WithLabelValues(outcome))
			if after != before+1 {
				t.Errorf("model_retrains_total{outcome=%q} = %v, want %v", outcome, after, before+1)
			}
		})
	}
}

func TestSetModelProfileCount(t *testing.T) {
	SetModelProfileCount(17)
	if got := testutil.ToFloat64(ModelTrainedProfiles); got != 17 {
		t.Errorf("model_trained_profile_count = %v, want 17", got)
	}
}

func TestRecordDBQuery(t *testing.T) {
	tests := []struct {
		name      string
		operation string
		table     string
		err       error
		wantError bool
	}{
		{name: "successful select", operation: "select", table: "profiles"},
		{name: "successful upsert", operation: "upsert", table: "interactions"},
		{name: "failed update", operation: "update", table: "profiles", err: errors.New("constraint violated"), wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(DBQueryErrors.WithLabelValues(tt.operation, tt.table))
			RecordDBQuery(tt.operation, tt.table, time.Millisecond, tt.err)
			after := testutil.ToFloat64(DBQueryErrors.WithLabelValues(tt.operation, tt.table))

			want := before
			if tt.wantError {
				want++
			}
			if after != want {
				t.Errorf("duckdb_query_errors_total = %v, want %v", after, want)
			}
		})
	}
}

func TestRecordClick(t *testing.T) {
	before := testutil.ToFloat64(InteractionClicksTotal.WithLabelValues("link"))
	RecordClick("link")
	RecordClick("link")
	if got := testutil.ToFloat64(InteractionClicksTotal.WithLabelValues("link")); got != before+2 {
		t.Errorf("interaction_clicks_total{result=link} = %v, want %v", got, before+2)
	}
}

func TestTrackActiveRequest_Concurrent(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			TrackActiveRequest(true)
			TrackActiveRequest(false)
		}()
	}
	wg.Wait()

	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("api_active_requests = %v, want %v", got, before)
	}
}

// TestMetricGathering tests that metrics can be gathered using testutil
func TestMetricGathering(t *testing.T) {
	RecordAPIRequest("GET", "/api/v1/users/{userID}/matches", "200", 5*time.Millisecond)
	SetCircuitBreakerState("interactions", 0)

	problems, err := testutil.GatherAndLint(prometheus.DefaultGatherer)
	if err != nil {
		t.Fatalf("GatherAndLint() error = %v", err)
	}
	for _, p := range problems {
		t.Logf("lint: %s: %s", p.Metric, p.Text)
	}
}
