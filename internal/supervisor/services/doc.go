// Cinecatalog - Movie Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecatalog

/*
Package services provides suture.Service wrappers for catalog server
components.

Each wrapper translates a component's lifecycle (ListenAndServe, RunWithContext,
Close, a periodic task) into suture's context-aware Serve method and names
itself through fmt.Stringer for supervisor logs.

# Available Services

HTTP Server (HTTPServerService):
  - Wraps *http.Server
  - Calls Shutdown with a fresh timeout context on cancellation

WebSocket Hub (WebSocketHubService):
  - Delegates to websocket.Hub.RunWithContext

NATS Publisher (NATSPublisherService):
  - Holds the publisher connection open until shutdown, then drains it

Checkpoint (CheckpointService):
  - Runs DuckDB CHECKPOINT on a fixed interval
  - Failures are logged and counted, not returned

# Interfaces

Wrappers accept small interfaces (HTTPServer, ContextHub, Closer,
Checkpointer) rather than concrete types so that they can be tested with
doubles and so that this package does not import the api or websocket
packages.
*/
package services
