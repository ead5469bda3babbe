// Cinecatalog - Movie Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecatalog

package config

import (
	"strings"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"empty db path", func(c *Config) { c.Database.Path = "" }, "DUCKDB_PATH"},
		{"negative threads", func(c *Config) { c.Database.Threads = -1 }, "DUCKDB_THREADS"},
		{"negative checkpoint interval", func(c *Config) { c.Database.CheckpointInterval = -time.Minute }, "DUCKDB_CHECKPOINT_INTERVAL"},
		{"zero timeout", func(c *Config) { c.Server.Timeout = 0 }, "HTTP_TIMEOUT"},
		{"max page size zero", func(c *Config) { c.API.MaxPageSize = 0 }, "API_MAX_PAGE_SIZE"},
		{"no cors origins", func(c *Config) { c.Security.CORSOrigins = nil }, "CORS_ORIGINS"},
		{"rate limit ignored when disabled", func(c *Config) {
			c.Security.RateLimitDisabled = true
			c.Security.RateLimitReqs = 0
		}, ""},
		{"rate limit zero", func(c *Config) { c.Security.RateLimitReqs = 0 }, "RATE_LIMIT_REQUESTS"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "LOG_FORMAT"},
		{"nats without prefix", func(c *Config) {
			c.Events.NATSURL = "nats://localhost:4222"
			c.Events.SubjectPrefix = ""
		}, "NATS_SUBJECT_PREFIX"},
		{"nats without host", func(c *Config) { c.Events.NATSURL = "nats://" }, "NATS_URL"},
		{"nats server list", func(c *Config) { c.Events.NATSURL = "nats://a:4222, tls://b:4222" }, ""},
		{"nats list with bad scheme", func(c *Config) { c.Events.NATSURL = "nats://a:4222,http://b" }, "NATS_URL"},
		{"nats list with empty entry", func(c *Config) { c.Events.NATSURL = "nats://a:4222,," }, "NATS_URL"},
		{"nats publish timeout", func(c *Config) {
			c.Events.NATSURL = "nats://localhost:4222"
			c.Events.PublishTimeout = -time.Second
		}, "NATS_PUBLISH_TIMEOUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want it to mention %s", err, tt.wantErr)
			}
		})
	}
}

func TestServerAddr(t *testing.T) {
	s := ServerConfig{Host: "127.0.0.1", Port: 8080}
	if got := s.Addr(); got != "127.0.0.1:8080" {
		t.Errorf("Addr() = %q, want 127.0.0.1:8080", got)
	}
}

func TestIsProduction(t *testing.T) {
	cfg := defaultConfig()
	if cfg.IsProduction() {
		t.Error("default environment should not be production")
	}
	cfg.Server.Environment = "production"
	if !cfg.IsProduction() {
		t.Error("IsProduction() = false, want true")
	}
}
