// Roommatch - Roommate Compatibility Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roommatch

package config

import (
	"net"
	"strconv"
	"time"
)

// Config is the complete service configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Match    MatchConfig    `koanf:"match"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	Timeout         time.Duration `koanf:"timeout"`          // read/write timeout per request
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"` // graceful drain on stop
}

// Addr returns host:port for net/http.
func (s *ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// DatabaseConfig configures the embedded DuckDB store.
type DatabaseConfig struct {
	Path      string `koanf:"path"`       // ":memory:" for an in-memory database
	MaxMemory string `koanf:"max_memory"` // DuckDB max_memory setting, e.g. "512MB"
	Threads   int    `koanf:"threads"`    // 0 = runtime.NumCPU()
}

// MatchConfig configures scoring, retraining and click-through links.
type MatchConfig struct {
	ActivationThreshold int    `koanf:"activation_threshold"`
	RetrainInterval     int    `koanf:"retrain_interval"`
	TopN                int    `koanf:"top_n"`
	ModelPath           string `koanf:"model_path"`

	// AsyncRetrain defers due retrains to the background service.
	AsyncRetrain bool `koanf:"async_retrain"`

	RetrainCheckInterval time.Duration `koanf:"retrain_check_interval"`
	TrainOnStartup       bool          `koanf:"train_on_startup"`
	RetrainTimeout       time.Duration `koanf:"retrain_timeout"`
	RetrainMinSpacing    time.Duration `koanf:"retrain_min_spacing"` // 0 = unlimited

	LinkBaseURL      string `koanf:"link_base_url"`
	PhoneCountryCode string `koanf:"phone_country_code"`
}

// SecurityConfig configures CORS, rate limiting and the admin token.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`

	// AdminToken guards the admin endpoints. Empty leaves them open.
	AdminToken string `koanf:"admin_token"`
}

// LoggingConfig configures the global zerolog logger.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Load reads configuration from defaults, an optional file and the environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
