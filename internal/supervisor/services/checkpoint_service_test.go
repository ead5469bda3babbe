// Cinecatalog - Movie Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecatalog

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tomtom215/cinecatalog/internal/config"
	"github.com/tomtom215/cinecatalog/internal/database"
)

type fakeCheckpointer struct {
	calls atomic.Int32
	err   error
}

func (f *fakeCheckpointer) Checkpoint(ctx context.Context) error {
	f.calls.Add(1)
	return f.err
}

func TestCheckpointServiceTicks(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"success", nil},
		{"failures keep ticking", errors.New("disk full")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := &fakeCheckpointer{err: tt.err}
			svc := NewCheckpointService(db, 10*time.Millisecond)

			ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
			defer cancel()

			if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
				t.Errorf("Serve() = %v, want context.DeadlineExceeded", err)
			}
			if db.calls.Load() < 2 {
				t.Errorf("calls = %d, want at least 2", db.calls.Load())
			}
		})
	}
}

func TestCheckpointServiceStopsBeforeFirstTick(t *testing.T) {
	db := &fakeCheckpointer{}
	svc := NewCheckpointService(db, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := svc.Serve(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() = %v, want context.Canceled", err)
	}
	if db.calls.Load() != 0 {
		t.Errorf("calls = %d, want 0", db.calls.Load())
	}
	if svc.String() != "duckdb-checkpoint" {
		t.Errorf("String() = %q", svc.String())
	}
}

func TestCheckpointServiceDuckDB(t *testing.T) {
	db, err := database.New(&config.DatabaseConfig{Path: ":memory:", MaxMemory: "256MB", Threads: 1})
	if err != nil {
		t.Fatalf("database.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	svc := NewCheckpointService(db, 10*time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()

	if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve() = %v, want context.DeadlineExceeded", err)
	}
}
