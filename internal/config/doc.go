// Cinecatalog - Movie Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecatalog

/*
Package config provides centralized configuration management for Cinecatalog.

Configuration is layered with Koanf v2: struct defaults, then an optional YAML
file, then environment variables. Later layers win.

# Configuration File

The file is looked up at $CONFIG_PATH, then config.yaml / config.yml in the
working directory, then /etc/cinecatalog/. A missing file is not an error.

# Environment Variables

Database (DatabaseConfig):
  - DUCKDB_PATH: Database file (default: /data/cinecatalog.duckdb, ":memory:" allowed)
  - DUCKDB_MAX_MEMORY: DuckDB memory limit (default: 1GB)
  - DUCKDB_THREADS: Worker threads (default: 0 = NumCPU)
  - DUCKDB_CHECKPOINT_INTERVAL: Periodic CHECKPOINT (default: 5m, 0 disables)

HTTP Server (ServerConfig):
  - HTTP_HOST: Bind address (default: 0.0.0.0)
  - HTTP_PORT: Listen port (default: 8080)
  - HTTP_TIMEOUT: Read/write timeout (default: 30s)
  - ENVIRONMENT: development, staging or production

API (APIConfig):
  - API_DEFAULT_PAGE_SIZE: Page size when ?size is omitted (default: 10)
  - API_MAX_PAGE_SIZE: Largest accepted ?size (default: 100)

Security (SecurityConfig):
  - CORS_ORIGINS: Comma-separated allowed origins (default: *)
  - RATE_LIMIT_REQUESTS: Requests per window per IP (default: 100)
  - RATE_LIMIT_WINDOW: Window length (default: 1m)
  - DISABLE_RATE_LIMIT: Turn rate limiting off

Logging (LoggingConfig):
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json or console (default: json)
  - LOG_CALLER: Include file:line
  - LOG_TIMESTAMP: Include timestamps (default: true)

Events (EventsConfig):
  - NATS_URL: Enables change publishing when set (nats://host:4222)
  - NATS_SUBJECT_PREFIX: Subject prefix (default: catalog)
  - NATS_PUBLISH_TIMEOUT: Per-publish flush timeout (default: 5s)

# Validation

LoadWithKoanf calls Config.Validate and refuses to return a config with
out-of-range values. Error messages name the environment variable to fix.
*/
package config
