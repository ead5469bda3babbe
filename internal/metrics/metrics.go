// Cinecatalog - Movie Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecatalog

package metrics

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for:
// - DuckDB query performance
// - API endpoint latency and throughput
// - Catalog mutations and association churn
// - WebSocket change feed
// - NATS change publishing and its circuit breaker

var (
	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table", "error_type"},
	)

	DBTransactions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_transactions_total",
			Help: "Total number of DuckDB transactions by outcome",
		},
		[]string{"result"}, // "commit", "rollback"
	)

	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of in-flight API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
		[]string{"endpoint"},
	)

	// Catalog Metrics
	CatalogMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_mutations_total",
			Help: "Total number of committed catalog mutations",
		},
		[]string{"entity", "action"}, // action: "created", "updated", "deleted"
	)

	CatalogAssociationChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_association_changes_total",
			Help: "Association pairs linked or unlinked during reconciliation",
		},
		[]string{"relation", "op"}, // relation: "movie_genres", "movie_actors"; op: "link", "unlink"
	)

	CatalogDeleteRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_delete_rejections_total",
			Help: "Deletes refused because the entity still has associations",
		},
		[]string{"entity"},
	)

	// WebSocket Metrics
	WSConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_connections",
			Help: "Current number of active WebSocket connections",
		},
	)

	WSMessagesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_messages_sent_total",
			Help: "Total number of WebSocket messages sent",
		},
	)

	WSErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "websocket_errors_total",
			Help: "Total number of WebSocket errors",
		},
		[]string{"error_type"},
	)

	// Event Publishing Metrics
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_events_published_total",
			Help: "Catalog change events handed to NATS by result",
		},
		[]string{"result"}, // "success", "failure", "rejected"
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordDBQuery records duration and, on failure, a classified error for one query.
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table, classifyDBError(err)).Inc()
	}
}

// classifyDBError maps an error to a bounded label value.
func classifyDBError(err error) string {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "no_rows"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "constraint"), strings.Contains(msg, "duplicate key"):
		return "constraint"
	case strings.Contains(msg, "conflict"):
		return "conflict"
	default:
		return "other"
	}
}

// RecordTransaction counts a finished transaction.
func RecordTransaction(committed bool) {
	if committed {
		DBTransactions.WithLabelValues("commit").Inc()
		return
	}
	DBTransactions.WithLabelValues("rollback").Inc()
}

// RecordAPIRequest records one finished API request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the in-flight request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit counts a request rejected by the rate limiter.
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordMutation counts a committed create, update or delete.
func RecordMutation(entity, action string) {
	CatalogMutations.WithLabelValues(entity, action).Inc()
}

// RecordAssociationChanges counts links and unlinks applied to one join table.
func RecordAssociationChanges(relation string, linked, unlinked int) {
	if linked > 0 {
		CatalogAssociationChanges.WithLabelValues(relation, "link").Add(float64(linked))
	}
	if unlinked > 0 {
		CatalogAssociationChanges.WithLabelValues(relation, "unlink").Add(float64(unlinked))
	}
}

// RecordDeleteRejected counts a guarded delete that was refused.
func RecordDeleteRejected(entity string) {
	CatalogDeleteRejections.WithLabelValues(entity).Inc()
}

// RecordEventPublish counts one NATS publish attempt by result.
func RecordEventPublish(result string) {
	EventsPublished.WithLabelValues(result).Inc()
}

// RecordCircuitBreakerTransition updates breaker state metrics.
// state is 0 (closed), 1 (half-open) or 2 (open).
func RecordCircuitBreakerTransition(name, from, to string, state float64) {
	CircuitBreakerState.WithLabelValues(name).Set(state)
	CircuitBreakerTransitions.WithLabelValues(name, from, to).Inc()
}
