// Cinecatalog - Movie Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecatalog

package websocket

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/cinecatalog/internal/catalog"
	"github.com/tomtom215/cinecatalog/internal/logging"
	"github.com/tomtom215/cinecatalog/internal/metrics"
)

//nolint:gochecknoinits // init ensures consistent logging for tests
func init() {
	logging.Init(logging.Config{
		Level:  "info",
		Format: "console",
		Output: io.Discard,
	})
}

// setupHub starts a hub that stops when the test ends.
func setupHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = hub.RunWithContext(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return hub
}

func createTestClient(hub *Hub) *Client {
	return &Client{id: clientIDCounter.Add(1), hub: hub, send: make(chan Message, 256)}
}

// waitForCount polls until the hub reports n clients.
func waitForCount(t *testing.T, hub *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.GetClientCount() != n {
		if time.Now().After(deadline) {
			t.Fatalf("client count = %d, want %d", hub.GetClientCount(), n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func receive(t *testing.T, c *Client) Message {
	t.Helper()
	select {
	case msg, ok := <-c.send:
		if !ok {
			t.Fatal("send channel closed")
		}
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("no message received")
	}
	return Message{}
}

func TestHub_RegisterUnregister(t *testing.T) {
	hub := setupHub(t)
	a, b := createTestClient(hub), createTestClient(hub)

	hub.Register <- a
	hub.Register <- b
	waitForCount(t, hub, 2)
	if got := testutil.ToFloat64(metrics.WSConnections); got != 2 {
		t.Errorf("websocket_connections = %v, want 2", got)
	}

	hub.Unregister <- a
	waitForCount(t, hub, 1)

	if _, ok := <-a.send; ok {
		t.Error("unregistered client's send channel should be closed")
	}

	// Unregistering twice must not close the channel again.
	hub.Unregister <- a
	waitForCount(t, hub, 1)
}

func TestHub_NotifyBroadcastsCatalogChange(t *testing.T) {
	hub := setupHub(t)
	clients := []*Client{createTestClient(hub), createTestClient(hub), createTestClient(hub)}
	for _, c := range clients {
		hub.Register <- c
	}
	waitForCount(t, hub, len(clients))

	var notifier catalog.Notifier = hub
	change := catalog.Change{Entity: catalog.EntityGenre, Action: catalog.ActionCreated, ID: 4, Name: "Noir"}
	notifier.Notify(context.Background(), change)

	for i, c := range clients {
		msg := receive(t, c)
		if msg.Type != MessageTypeCatalogChange {
			t.Errorf("client %d: type = %q", i, msg.Type)
		}
		got, ok := msg.Data.(catalog.Change)
		if !ok || got != change {
			t.Errorf("client %d: data = %#v", i, msg.Data)
		}
	}
}

func TestHub_BroadcastChannelFull(t *testing.T) {
	hub := NewHub() // not running, nothing drains the channel

	before := testutil.ToFloat64(metrics.WSErrors.WithLabelValues("broadcast_full"))
	for i := 0; i < cap(hub.broadcast)+5; i++ {
		hub.BroadcastJSON(MessageTypeCatalogChange, i)
	}
	if got := testutil.ToFloat64(metrics.WSErrors.WithLabelValues("broadcast_full")); got != before+5 {
		t.Errorf("broadcast_full errors = %v, want %v", got, before+5)
	}
	if len(hub.broadcast) != cap(hub.broadcast) {
		t.Errorf("broadcast len = %d, want %d", len(hub.broadcast), cap(hub.broadcast))
	}
}

func TestHub_DropsSlowClient(t *testing.T) {
	hub := NewHub()
	slow := &Client{id: clientIDCounter.Add(1), hub: hub, send: make(chan Message)} // unbuffered, never read
	fast := createTestClient(hub)
	hub.clients[slow] = true
	hub.clients[fast] = true

	hub.broadcastToClients(Message{Type: MessageTypeCatalogChange})

	if hub.GetClientCount() != 1 {
		t.Fatalf("client count = %d, want 1", hub.GetClientCount())
	}
	if _, ok := hub.clients[fast]; !ok {
		t.Error("fast client should remain")
	}
	if _, ok := <-slow.send; ok {
		t.Error("slow client's channel should be closed")
	}
	if slow.closeCode != websocket.CloseTryAgainLater || slow.closeReason != closeReasonFellBehind {
		t.Errorf("close = %d %q, want try-again-later %q", slow.closeCode, slow.closeReason, closeReasonFellBehind)
	}
	if fast.closeCode != 0 {
		t.Errorf("fast client close code = %d, want unset", fast.closeCode)
	}
}

func TestHub_SubscriptionFiltersChanges(t *testing.T) {
	hub := NewHub()
	all := createTestClient(hub)
	genres := createTestClient(hub)
	genres.subscribe([]string{catalog.EntityGenre})
	hub.clients[all] = true
	hub.clients[genres] = true

	tests := []struct {
		entity     string
		wantGenres bool
	}{
		{catalog.EntityMovie, false},
		{catalog.EntityActor, false},
		{catalog.EntityGenre, true},
	}
	for _, tt := range tests {
		t.Run(tt.entity, func(t *testing.T) {
			change := catalog.Change{Entity: tt.entity, Action: catalog.ActionUpdated, ID: 1}
			hub.broadcastToClients(Message{Type: MessageTypeCatalogChange, Data: change})

			if got := receive(t, all); got.Data != change {
				t.Errorf("unfiltered client data = %#v", got.Data)
			}
			if got := len(genres.send); (got == 1) != tt.wantGenres {
				t.Errorf("genre subscriber queued %d messages, want delivery %v", got, tt.wantGenres)
			}
			if tt.wantGenres {
				receive(t, genres)
			}
		})
	}

	// Non-change messages reach every client.
	hub.broadcastToClients(Message{Type: MessageTypePong})
	receive(t, all)
	receive(t, genres)
}

func TestClient_Subscribe(t *testing.T) {
	tests := []struct {
		name     string
		entities []string
		want     []string
		wants    map[string]bool
	}{
		{
			name:     "single entity",
			entities: []string{"movie"},
			want:     []string{"movie"},
			wants:    map[string]bool{"movie": true, "actor": false, "genre": false},
		},
		{
			name:     "unknown entities ignored",
			entities: []string{"genre", "director", "actor", "genre"},
			want:     []string{"actor", "genre"},
			wants:    map[string]bool{"movie": false, "actor": true, "genre": true},
		},
		{
			name:     "empty restores full feed",
			entities: nil,
			want:     []string{"actor", "genre", "movie"},
			wants:    map[string]bool{"movie": true, "actor": true, "genre": true},
		},
		{
			name:     "only unknown restores full feed",
			entities: []string{"studio"},
			want:     []string{"actor", "genre", "movie"},
			wants:    map[string]bool{"movie": true, "actor": true, "genre": true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := createTestClient(NewHub())
			c.subscribe([]string{"actor"})

			got := c.subscribe(tt.entities)
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("accepted = %v, want %v", got, tt.want)
			}
			for entity, want := range tt.wants {
				if c.wants(entity) != want {
					t.Errorf("wants(%q) = %v, want %v", entity, !want, want)
				}
			}
		})
	}
}

func TestHub_SortedClients(t *testing.T) {
	hub := NewHub()
	for i := 0; i < 10; i++ {
		hub.clients[createTestClient(hub)] = true
	}
	sorted := hub.sortedClients()
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].id >= sorted[i].id {
			t.Fatalf("clients not in ID order at %d: %d >= %d", i, sorted[i-1].id, sorted[i].id)
		}
	}
}

func TestHub_ConcurrentNotify(t *testing.T) {
	hub := setupHub(t)
	client := createTestClient(hub)
	hub.Register <- client
	waitForCount(t, hub, 1)

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			hub.Notify(context.Background(), catalog.Change{Entity: catalog.EntityMovie, Action: catalog.ActionUpdated, ID: id})
		}(int64(i))
	}
	wg.Wait()

	seen := make(map[int64]bool)
	for i := 0; i < n; i++ {
		seen[receive(t, client).Data.(catalog.Change).ID] = true
	}
	if len(seen) != n {
		t.Errorf("received %d distinct changes, want %d", len(seen), n)
	}
}

func TestHub_RunWithContextShutdown(t *testing.T) {
	tests := []struct {
		name       string
		ctx        func() (context.Context, context.CancelFunc)
		wantErr    error
		wantReason string
	}{
		{
			name:       "canceled",
			ctx:        func() (context.Context, context.CancelFunc) { return context.WithCancel(context.Background()) },
			wantErr:    context.Canceled,
			wantReason: string(ShutdownReasonContextCanceled),
		},
		{
			name: "deadline",
			ctx: func() (context.Context, context.CancelFunc) {
				return context.WithTimeout(context.Background(), 50*time.Millisecond)
			},
			wantErr:    context.DeadlineExceeded,
			wantReason: string(ShutdownReasonContextDeadline),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			prev := logging.Logger()
			logging.SetLogger(logging.NewTestLogger(&buf))
			t.Cleanup(func() { logging.SetLogger(prev) })

			hub := NewHub()
			ctx, cancel := tt.ctx()
			defer cancel()

			errCh := make(chan error, 1)
			go func() { errCh <- hub.RunWithContext(ctx) }()

			client := createTestClient(hub)
			hub.Register <- client
			waitForCount(t, hub, 1)

			if tt.wantErr == context.Canceled {
				cancel()
			}

			select {
			case err := <-errCh:
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("RunWithContext() = %v, want %v", err, tt.wantErr)
				}
			case <-time.After(2 * time.Second):
				t.Fatal("hub did not stop")
			}

			if hub.GetClientCount() != 0 {
				t.Error("all clients should be closed on shutdown")
			}
			if _, ok := <-client.send; ok {
				t.Error("client channel should be closed")
			}
			out := buf.String()
			if !strings.Contains(out, "websocket hub stopped") || !strings.Contains(out, tt.wantReason) {
				t.Errorf("shutdown log = %q", out)
			}
		})
	}
}

func BenchmarkHub_Notify(b *testing.B) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = hub.RunWithContext(ctx) }()

	change := catalog.Change{Entity: catalog.EntityMovie, Action: catalog.ActionUpdated, ID: 1}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		hub.Notify(ctx, change)
	}
}
