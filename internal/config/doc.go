// Roommatch - Roommate Compatibility Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roommatch

/*
Package config loads Roommatch configuration with koanf.

# Layering

Values are resolved in three layers, later layers winning:

 1. Struct defaults (defaultConfig)
 2. An optional YAML file: CONFIG_PATH, or the first of config.yaml,
    config.yml, /etc/roommatch/config.yaml
 3. Environment variables listed in the mapping table in koanf.go

Environment variables without a mapping are ignored.

# Example config.yaml

	server:
	  port: 8080
	database:
	  path: /data/roommatch.duckdb
	match:
	  retrain_interval: 5
	  model_path: /data/roommatch/model.json
	  async_retrain: false
	security:
	  cors_origins: ["https://roommatch.example"]
	  admin_token: change-me
	logging:
	  level: info

# Environment Variables

	HTTP_HOST, HTTP_PORT, HTTP_TIMEOUT, HTTP_SHUTDOWN_TIMEOUT
	DUCKDB_PATH, DUCKDB_MAX_MEMORY, DUCKDB_THREADS
	MATCH_ACTIVATION_THRESHOLD, MATCH_RETRAIN_INTERVAL, MATCH_TOP_N
	MODEL_PATH, MATCH_ASYNC_RETRAIN, RETRAIN_CHECK_INTERVAL, TRAIN_ON_STARTUP
	RETRAIN_TIMEOUT, RETRAIN_MIN_SPACING, LINK_BASE_URL, PHONE_COUNTRY_CODE
	CORS_ORIGINS (comma separated), RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW
	DISABLE_RATE_LIMIT, ADMIN_TOKEN
	LOG_LEVEL, LOG_FORMAT, LOG_CALLER
*/
package config
