// Cinecatalog - Movie Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecatalog

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/cinecatalog/internal/api"
	"github.com/tomtom215/cinecatalog/internal/catalog"
	"github.com/tomtom215/cinecatalog/internal/config"
	"github.com/tomtom215/cinecatalog/internal/database"
	"github.com/tomtom215/cinecatalog/internal/events"
	"github.com/tomtom215/cinecatalog/internal/logging"
	"github.com/tomtom215/cinecatalog/internal/supervisor"
	"github.com/tomtom215/cinecatalog/internal/supervisor/services"
	ws "github.com/tomtom215/cinecatalog/internal/websocket"
)

func main() {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: cfg.Logging.Timestamp,
		Output:    os.Stderr,
	})

	logging.Info().Str("config", cfg.String()).Msg("Starting cinecatalog")

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("Server stopped with error")
	}
	logging.Info().Msg("Application stopped gracefully")
}

// run owns every resource so that deferred cleanup happens before main exits.
func run(cfg *config.Config) error {
	db, err := database.New(&cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Str("path", cfg.Database.Path).Msg("Database initialized")

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.DefaultTreeConfig())
	if err != nil {
		return err
	}

	wsHub := ws.NewHub()
	tree.AddMessagingService(services.NewWebSocketHubService(wsHub))

	notifiers := []catalog.Notifier{wsHub}
	if cfg.Events.Enabled() {
		pub, err := events.NewNATSPublisher(&cfg.Events)
		if err != nil {
			return err
		}
		notifiers = append(notifiers, pub)
		tree.AddMessagingService(services.NewNATSPublisherService(pub))
		logging.Info().Str("subject_prefix", cfg.Events.SubjectPrefix).Msg("NATS change publishing enabled")
	}

	if cfg.Database.CheckpointInterval > 0 {
		tree.AddDataService(services.NewCheckpointService(db, cfg.Database.CheckpointInterval))
	}

	svc := catalog.NewService(db, catalog.Notifiers(notifiers...), cfg.API.MaxPageSize)
	handler := api.NewHandler(svc, db, wsHub, cfg)
	router := api.NewRouter(handler, api.NewChiMiddlewareFromConfig(&cfg.Security))

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info().Msg("Starting supervisor tree")
	err = tree.Serve(ctx)

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, u := range unstopped {
		logging.Warn().Str("service", u.Name).Msg("Service failed to stop within timeout")
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
