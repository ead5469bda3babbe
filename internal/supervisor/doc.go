// Cinecatalog - Movie Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecatalog

/*
Package supervisor provides process supervision for the catalog server using
suture v4.

Every long-running component runs under a hierarchical supervisor tree with
automatic restart and graceful shutdown.

# Overview

	RootSupervisor ("cinecatalog")
	├── DataSupervisor ("data-layer")
	│   └── CheckpointService (if DUCKDB_CHECKPOINT_INTERVAL > 0)
	├── MessagingSupervisor ("messaging-layer")
	│   ├── WebSocketHubService
	│   └── NATSPublisherService (if NATS_URL is set)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

A crash in one layer restarts inside that layer only.

# Usage Example

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}

	tree.AddDataService(services.NewCheckpointService(db, cfg.Database.CheckpointInterval))
	tree.AddMessagingService(services.NewWebSocketHubService(hub))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err = tree.Serve(ctx)

# Failure Handling

Each failure increments a counter that decays over FailureDecay seconds.
Once the counter exceeds FailureThreshold, restarts wait FailureBackoff.

Return behavior of a suture.Service:
  - nil: stopped cleanly, not restarted
  - error: crashed, restarted
  - ctx.Err() after cancellation: shutdown, return promptly

# What Is NOT Supervised

DuckDB itself is an embedded library owned by the database package. Only its
periodic checkpoint runs under the tree.

# Debugging Shutdown Issues

	report, _ := tree.UnstoppedServiceReport()
	for _, svc := range report {
	    logging.Warn().Str("service", svc.Name).Msg("Service did not stop")
	}

# See Also

  - internal/supervisor/services: service wrappers
  - github.com/thejerf/suture/v4
*/
package supervisor
