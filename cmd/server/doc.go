// Cinecatalog - Movie Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecatalog

/*
Package main is the entry point for the cinecatalog server.

Cinecatalog is a REST API over a movie catalog: movies, actors and genres
with many-to-many associations, backed by DuckDB.

# Application Architecture

	RootSupervisor ("cinecatalog")
	├── DataSupervisor ("data-layer")
	│   └── DuckDB checkpoint (DUCKDB_CHECKPOINT_INTERVAL > 0)
	├── MessagingSupervisor ("messaging-layer")
	│   ├── WebSocket hub (change feed on /api/ws)
	│   └── NATS publisher (NATS_URL set)
	└── APISupervisor ("api-layer")
	    └── HTTP server

Startup order:

 1. Configuration: koanf v2 (defaults, config file, environment)
 2. Logging: zerolog, JSON or console
 3. Database: DuckDB with schema migrations
 4. Change notifiers: WebSocket hub, optional NATS publisher
 5. Catalog service and chi router
 6. Supervisor tree

# Signal Handling

SIGINT and SIGTERM cancel the tree. The HTTP server gets 10s to drain
in-flight requests, the hub closes its clients, the publisher drains, and the
database is checkpointed and closed last.

# Example Usage

	export DUCKDB_PATH=/data/catalog.duckdb
	export HTTP_PORT=8080
	export NATS_URL=nats://localhost:4222
	./cinecatalog
*/
package main
