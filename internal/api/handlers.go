// Cinecatalog - Movie Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecatalog

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tomtom215/cinecatalog/internal/catalog"
	"github.com/tomtom215/cinecatalog/internal/config"
	"github.com/tomtom215/cinecatalog/internal/logging"
	ws "github.com/tomtom215/cinecatalog/internal/websocket"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler contains dependencies for API handlers
//
// Handler methods are split across files:
//   - handlers.go: Handler struct, constructor, websocket upgrade
//   - handlers_helpers.go: request parsing and response writing
//   - handlers_movies.go, handlers_actors.go, handlers_genres.go: entity routes
//   - handlers_search.go: combined search
//   - handlers_health.go: health endpoint
type Handler struct {
	svc             *catalog.Service
	db              Pinger
	wsHub           *ws.Hub
	corsOrigins     []string
	defaultPageSize int
	startTime       time.Time
}

// NewHandler creates a new API handler. wsHub may be nil, in which case
// /api/ws answers 503.
func NewHandler(svc *catalog.Service, db Pinger, wsHub *ws.Hub, cfg *config.Config) *Handler {
	return &Handler{
		svc:             svc,
		db:              db,
		wsHub:           wsHub,
		corsOrigins:     cfg.Security.CORSOrigins,
		defaultPageSize: cfg.API.DefaultPageSize,
		startTime:       time.Now(),
	}
}

// getUpgrader creates a WebSocket upgrader with origin checking and a handshake timeout.
func (h *Handler) getUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		CheckOrigin:      h.checkWebSocketOrigin,
		HandshakeTimeout: 10 * time.Second,
	}
}

// checkWebSocketOrigin accepts browsers from a configured CORS origin.
// Legitimate browser WebSockets always send Origin, so a missing one is rejected.
func (h *Handler) checkWebSocketOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		logging.Warn().Msg("WebSocket connection rejected: missing Origin header")
		return false
	}

	for _, allowed := range h.corsOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}

	logging.Warn().Str("origin", sanitizeLogValue(origin)).Msg("WebSocket connection rejected from unauthorized origin")
	return false
}

// WebSocket upgrades the connection and subscribes it to catalog changes.
func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	if h.wsHub == nil {
		respondJSON(w, http.StatusServiceUnavailable, errorBody("WebSocket service unavailable"))
		return
	}

	upgrader := h.getUpgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error
		logging.Ctx(r.Context()).Warn().Err(err).Msg("WebSocket upgrade error")
		return
	}

	client := ws.NewClient(h.wsHub, conn)
	h.wsHub.Register <- client
	client.Start()
}
