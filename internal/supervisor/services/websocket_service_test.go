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

	"github.com/tomtom215/cinecatalog/internal/websocket"
)

type fakeHub struct {
	err  error
	runs atomic.Int32
}

func (f *fakeHub) RunWithContext(ctx context.Context) error {
	f.runs.Add(1)
	if f.err != nil {
		return f.err
	}
	<-ctx.Done()
	return ctx.Err()
}

func TestWebSocketHubServiceDelegates(t *testing.T) {
	hubErr := errors.New("hub failed")

	tests := []struct {
		name    string
		hub     *fakeHub
		timeout time.Duration
		want    error
	}{
		{"deadline", &fakeHub{}, 50 * time.Millisecond, context.DeadlineExceeded},
		{"hub error", &fakeHub{err: hubErr}, time.Second, hubErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), tt.timeout)
			defer cancel()

			svc := NewWebSocketHubService(tt.hub)
			if err := svc.Serve(ctx); !errors.Is(err, tt.want) {
				t.Errorf("Serve() = %v, want %v", err, tt.want)
			}
			if tt.hub.runs.Load() != 1 {
				t.Errorf("runs = %d, want 1", tt.hub.runs.Load())
			}
			if svc.String() != "websocket-hub" {
				t.Errorf("String() = %q", svc.String())
			}
		})
	}
}

func TestWebSocketHubServiceRealHub(t *testing.T) {
	hub := websocket.NewHub()
	svc := NewWebSocketHubService(hub)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("hub did not stop")
	}
}
