// Cinecatalog - Movie Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecatalog

package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// captureGlobal swaps the global logger for one writing to a buffer.
func captureGlobal(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := Logger()
	prevLevel := zerolog.GlobalLevel()
	SetLogger(NewTestLogger(&buf))
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	t.Cleanup(func() {
		SetLogger(prev)
		zerolog.SetGlobalLevel(prevLevel)
	})
	return &buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	line := strings.TrimSpace(buf.String())
	if i := strings.LastIndexByte(line, '\n'); i >= 0 {
		line = line[i+1:]
	}
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(line), &m); err != nil {
		t.Fatalf("log line is not JSON: %q: %v", line, err)
	}
	return m
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Level != "info" {
		t.Errorf("expected default level 'info', got '%s'", cfg.Level)
	}
	if cfg.Format != "json" {
		t.Errorf("expected default format 'json', got '%s'", cfg.Format)
	}
	if !cfg.Timestamp {
		t.Error("expected default timestamp to be true")
	}
}

func TestInit(t *testing.T) {
	var buf bytes.Buffer
	prev := Logger()
	t.Cleanup(func() {
		Init(DefaultConfig())
		SetLogger(prev)
	})

	Init(Config{Level: "debug", Format: "json", Timestamp: true, Output: &buf})
	Info().Msg("test message")

	m := decodeLine(t, &buf)
	if m["message"] != "test message" {
		t.Errorf("message = %v", m["message"])
	}
	if m["level"] != "info" {
		t.Errorf("level = %v", m["level"])
	}
	if m["app"] != "cinecatalog" {
		t.Errorf("app = %v", m["app"])
	}
	if _, ok := m["time"]; !ok {
		t.Error("expected time field")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"disabled", zerolog.Disabled},
		{"bogus", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseLevel(tt.input); got != tt.expected {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCtxAddsIDs(t *testing.T) {
	buf := captureGlobal(t)

	ctx := ContextWithRequestID(context.Background(), "req-1")
	ctx = ContextWithCorrelationID(ctx, "corr1234")
	Ctx(ctx).Info().Msg("with ids")

	m := decodeLine(t, buf)
	if m["request_id"] != "req-1" {
		t.Errorf("request_id = %v", m["request_id"])
	}
	if m["correlation_id"] != "corr1234" {
		t.Errorf("correlation_id = %v", m["correlation_id"])
	}
}

func TestGenerateIDs(t *testing.T) {
	if got := len(GenerateCorrelationID()); got != 8 {
		t.Errorf("correlation id length = %d, want 8", got)
	}
	a, b := GenerateRequestID(), GenerateRequestID()
	if a == b || len(a) != 36 {
		t.Errorf("request ids %q %q should be distinct UUIDs", a, b)
	}
}

func TestMutation(t *testing.T) {
	buf := captureGlobal(t)

	Mutation(context.Background(), "genre", "deleted", 7).Bool("force", true).Msg("Catalog change committed")

	m := decodeLine(t, buf)
	if m["entity"] != "genre" || m["action"] != "deleted" {
		t.Errorf("unexpected fields: %v", m)
	}
	if m["entity_id"] != float64(7) {
		t.Errorf("entity_id = %v", m["entity_id"])
	}
	if m["level"] != "debug" {
		t.Errorf("level = %v, want debug", m["level"])
	}
}

func TestSlogHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewSlogHandlerWithLogger(NewTestLogger(&buf)))

	logger.WithGroup("svc").With("name", "http-server").
		Warn("service restarted", "attempt", 3, "cause", errors.New("boom"))

	m := decodeLine(t, &buf)
	if m["level"] != "warn" {
		t.Errorf("level = %v, want warn", m["level"])
	}
	if m["svc.name"] != "http-server" {
		t.Errorf("svc.name = %v", m["svc.name"])
	}
	if m["svc.attempt"] != float64(3) {
		t.Errorf("svc.attempt = %v", m["svc.attempt"])
	}
	if m["svc.cause"] != "boom" {
		t.Errorf("svc.cause = %v", m["svc.cause"])
	}
}

func TestSlogHandlerEnabled(t *testing.T) {
	h := NewSlogHandlerWithLogger(NewTestLogger(&bytes.Buffer{}).Level(zerolog.WarnLevel))
	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info should be disabled for a warn-level logger")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Error("error should be enabled for a warn-level logger")
	}
}

func TestWithComponent(t *testing.T) {
	buf := captureGlobal(t)

	l := WithComponent("checkpoint")
	l.Info().Msg("tick")
	m := decodeLine(t, buf)
	if m["component"] != "checkpoint" {
		t.Errorf("component = %v", m["component"])
	}

	buf.Reset()
	child := With().Str("table", "movies").Logger()
	child.Warn().Msg("slow")
	m = decodeLine(t, buf)
	if m["table"] != "movies" || m["level"] != "warn" {
		t.Errorf("fields = %v", m)
	}
}
