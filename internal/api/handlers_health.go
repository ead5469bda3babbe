// Cinecatalog - Movie Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecatalog

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/cinecatalog/internal/logging"
)

// healthPingTimeout bounds the database check so a wedged DuckDB cannot
// hang the probe.
const healthPingTimeout = 2 * time.Second

// HealthStatus is the body of GET /health.
type HealthStatus struct {
	Status   string  `json:"status"`
	Database bool    `json:"database"`
	Uptime   float64 `json:"uptime_seconds"`
}

// Health handles GET /health. It answers 503 when the database ping fails.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
	defer cancel()

	dbConnected := false
	if h.db != nil {
		if err := h.db.Ping(ctx); err != nil {
			logging.Ctx(r.Context()).Warn().Err(err).Msg("Health check: database ping failed")
		} else {
			dbConnected = true
		}
	}

	status, code := "healthy", http.StatusOK
	if !dbConnected {
		status, code = "unhealthy", http.StatusServiceUnavailable
	}

	respondJSON(w, code, HealthStatus{
		Status:   status,
		Database: dbConnected,
		Uptime:   time.Since(h.startTime).Seconds(),
	})
}
