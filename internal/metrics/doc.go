// Cinecatalog - Movie Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecatalog

/*
Package metrics provides Prometheus metrics for Cinecatalog.

All collectors are registered on the default registry through promauto and
exposed at /metrics by the API router (promhttp).

# Available Metrics

Database:
  - duckdb_query_duration_seconds{operation,table}
  - duckdb_query_errors_total{operation,table,error_type}
  - duckdb_transactions_total{result}

API:
  - api_requests_total{method,endpoint,status_code}
  - api_request_duration_seconds{method,endpoint}
  - api_active_requests
  - api_rate_limit_hits_total{endpoint}

Catalog:
  - catalog_mutations_total{entity,action}
  - catalog_association_changes_total{relation,op}
  - catalog_delete_rejections_total{entity}

Change feed:
  - websocket_connections, websocket_messages_sent_total, websocket_errors_total{error_type}
  - catalog_events_published_total{result}
  - circuit_breaker_state{name}, circuit_breaker_state_transitions_total{name,from_state,to_state}

error_type is a small fixed set (no_rows, constraint, conflict, canceled,
other) rather than the raw driver message.
*/
package metrics
