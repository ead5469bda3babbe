// Cinecatalog - Movie Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecatalog

package services

import (
	"context"
	"time"

	"github.com/tomtom215/cinecatalog/internal/logging"
)

// Checkpointer is satisfied by *database.DB.
type Checkpointer interface {
	Checkpoint(ctx context.Context) error
}

// CheckpointService folds the DuckDB write-ahead log into the database file
// on a fixed interval so that a crash replays at most one interval of writes.
//
//	tree.AddDataService(services.NewCheckpointService(db, cfg.Database.CheckpointInterval))
type CheckpointService struct {
	db       Checkpointer
	interval time.Duration
	name     string
}

// NewCheckpointService creates a periodic checkpoint service. The caller
// must not add it to the tree when interval is zero.
func NewCheckpointService(db Checkpointer, interval time.Duration) *CheckpointService {
	return &CheckpointService{
		db:       db,
		interval: interval,
		name:     "duckdb-checkpoint",
	}
}

// Serve implements suture.Service. A failed checkpoint is logged and retried
// on the next tick; it never restarts the service.
func (s *CheckpointService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			start := time.Now()
			if err := s.db.Checkpoint(ctx); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				logging.Warn().Err(err).Msg("Periodic checkpoint failed")
				continue
			}
			logging.Debug().Dur("duration", time.Since(start)).Msg("Periodic checkpoint completed")
		}
	}
}

// String implements fmt.Stringer for supervisor logs.
func (s *CheckpointService) String() string {
	return s.name
}
