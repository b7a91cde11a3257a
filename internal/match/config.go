// Roommatch - Roommate Compatibility Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roommatch

package match

import (
	"fmt"
	"time"
)

// Config contains the engine's path-selection and retrain policy.
type Config struct {
	// ActivationThreshold is the minimum profile count for the learned path.
	// Default: 1
	ActivationThreshold int `json:"activation_threshold"`

	// RetrainInterval is how many new profiles since the last training trigger a retrain.
	// Default: 5
	RetrainInterval int `json:"retrain_interval"`

	// TopN is the number of matches kept per session.
	// Default: 5
	TopN int `json:"top_n"`

	// AsyncRetrain hands retraining to the background service instead of
	// running it inside the session that noticed the trigger.
	// Default: false
	AsyncRetrain bool `json:"async_retrain"`

	// RetrainMinSpacing is the minimum time between retrain attempts. Zero disables throttling.
	// Default: 0
	RetrainMinSpacing time.Duration `json:"retrain_min_spacing"`

	// RetrainTimeout bounds one training run. The run does not inherit the
	// cancellation of the session that started it. Zero means no deadline.
	// Default: 2m
	RetrainTimeout time.Duration `json:"retrain_timeout"`
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() *Config {
	return &Config{
		ActivationThreshold: 1,
		RetrainInterval:     5,
		TopN:                5,
		AsyncRetrain:        false,
		RetrainMinSpacing:   0,
		RetrainTimeout:      2 * time.Minute,
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.ActivationThreshold < 0 {
		return fmt.Errorf("activation_threshold must be non-negative, got %d", c.ActivationThreshold)
	}
	if c.RetrainInterval < 1 {
		return fmt.Errorf("retrain_interval must be positive, got %d", c.RetrainInterval)
	}
	if c.TopN < 1 {
		return fmt.Errorf("top_n must be positive, got %d", c.TopN)
	}
	if c.RetrainMinSpacing < 0 {
		return fmt.Errorf("retrain_min_spacing must be non-negative, got %v", c.RetrainMinSpacing)
	}
	if c.RetrainTimeout < 0 {
		return fmt.Errorf("retrain_timeout must be non-negative, got %v", c.RetrainTimeout)
	}
	return nil
}

// RetrainDue reports whether a model trained at trainedAt profiles is stale
// once the deployment holds total profiles.
func (c *Config) RetrainDue(trainedAt, total int) bool {
	return total >= trainedAt+c.RetrainInterval
}
