// Roommatch - Roommate Compatibility Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roommatch

package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/tomtom215/roommatch/internal/logging"
)

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateDatabase(); err != nil {
		return err
	}
	if err := c.validateMatch(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if c.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("HTTP_SHUTDOWN_TIMEOUT must not be negative")
	}
	return nil
}

func (c *Config) validateDatabase() error {
	if c.Database.Path == "" {
		return fmt.Errorf("DUCKDB_PATH is required")
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("DUCKDB_THREADS must not be negative")
	}
	return nil
}

func (c *Config) validateMatch() error {
	m := &c.Match
	if m.ActivationThreshold < 0 {
		return fmt.Errorf("MATCH_ACTIVATION_THRESHOLD must not be negative")
	}
	if m.RetrainInterval < 1 {
		return fmt.Errorf("MATCH_RETRAIN_INTERVAL must be at least 1")
	}
	if m.TopN < 1 {
		return fmt.Errorf("MATCH_TOP_N must be at least 1")
	}
	if strings.TrimSpace(m.ModelPath) == "" {
		return fmt.Errorf("MODEL_PATH is required")
	}
	if m.RetrainCheckInterval <= 0 {
		return fmt.Errorf("RETRAIN_CHECK_INTERVAL must be positive")
	}
	if m.RetrainTimeout <= 0 {
		return fmt.Errorf("RETRAIN_TIMEOUT must be positive")
	}
	if m.RetrainMinSpacing < 0 {
		return fmt.Errorf("RETRAIN_MIN_SPACING must not be negative")
	}
	if u, err := url.Parse(m.LinkBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("LINK_BASE_URL must be an absolute URL, got %q", m.LinkBaseURL)
	}
	if m.PhoneCountryCode == "" || strings.Trim(m.PhoneCountryCode, "0123456789") != "" {
		return fmt.Errorf("PHONE_COUNTRY_CODE must be numeric, got %q", m.PhoneCountryCode)
	}
	return nil
}

const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if !validLogFormats[strings.ToLower(c.Logging.Format)] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// HasWildcardCORS reports whether any origin is "*".
func (c *Config) HasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}
