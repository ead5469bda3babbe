// Cinecatalog - Movie Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecatalog

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/cinecatalog/internal/logging"
)

// schemaContext returns a context with timeout for schema operations.
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// Join tables carry no foreign keys. Pair rows are removed explicitly by the
// catalog before an entity row is deleted.
var coreSchema = []string{
	`CREATE SEQUENCE IF NOT EXISTS movies_id_seq START 1`,
	`CREATE SEQUENCE IF NOT EXISTS actors_id_seq START 1`,
	`CREATE SEQUENCE IF NOT EXISTS genres_id_seq START 1`,

	`CREATE TABLE IF NOT EXISTS movies (
		id BIGINT PRIMARY KEY DEFAULT nextval('movies_id_seq'),
		title VARCHAR NOT NULL UNIQUE,
		release_year INTEGER NOT NULL,
		duration INTEGER NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT current_timestamp,
		updated_at TIMESTAMP NOT NULL DEFAULT current_timestamp
	)`,

	`CREATE TABLE IF NOT EXISTS actors (
		id BIGINT PRIMARY KEY DEFAULT nextval('actors_id_seq'),
		name VARCHAR NOT NULL UNIQUE,
		birth_date DATE NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT current_timestamp,
		updated_at TIMESTAMP NOT NULL DEFAULT current_timestamp
	)`,

	`CREATE TABLE IF NOT EXISTS genres (
		id BIGINT PRIMARY KEY DEFAULT nextval('genres_id_seq'),
		name VARCHAR NOT NULL UNIQUE,
		created_at TIMESTAMP NOT NULL DEFAULT current_timestamp,
		updated_at TIMESTAMP NOT NULL DEFAULT current_timestamp
	)`,

	`CREATE TABLE IF NOT EXISTS movie_genres (
		movie_id BIGINT NOT NULL,
		genre_id BIGINT NOT NULL,
		PRIMARY KEY (movie_id, genre_id)
	)`,

	`CREATE TABLE IF NOT EXISTS movie_actors (
		movie_id BIGINT NOT NULL,
		actor_id BIGINT NOT NULL,
		PRIMARY KEY (movie_id, actor_id)
	)`,
}

// createTables creates the core database tables
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, stmt := range coreSchema {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// Migration represents a versioned database migration.
type Migration struct {
	Version     int       // Unique version number (monotonically increasing)
	Name        string    // Human-readable migration name
	Description string    // Description of what this migration does
	SQL         string    // SQL statement to execute
	AppliedAt   time.Time // When the migration was applied (populated on query)
}

// schemaMigrationsTable creates the migration tracking table
const schemaMigrationsTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT,
	applied_at TIMESTAMP NOT NULL DEFAULT current_timestamp
);
`

// getMigrations returns all versioned migrations in order.
//
// Migrations MUST be append-only - never modify or remove existing migrations
// once users have databases with data.
func (db *DB) getMigrations() []Migration {
	return []Migration{
		{Version: 1, Name: "idx_movie_genres_genre", Description: "Reverse lookup of movies by genre",
			SQL: `CREATE INDEX IF NOT EXISTS idx_movie_genres_genre ON movie_genres (genre_id)`},
		{Version: 2, Name: "idx_movie_actors_actor", Description: "Reverse lookup of movies by actor",
			SQL: `CREATE INDEX IF NOT EXISTS idx_movie_actors_actor ON movie_actors (actor_id)`},
		{Version: 3, Name: "idx_movies_release_year", Description: "Movie listing filtered by release year",
			SQL: `CREATE INDEX IF NOT EXISTS idx_movies_release_year ON movies (release_year)`},
	}
}

func (db *DB) createMigrationsTable(ctx context.Context) error {
	_, err := db.conn.ExecContext(ctx, schemaMigrationsTable)
	return err
}

// getAppliedMigrations returns a map of version -> Migration for all applied migrations
func (db *DB) getAppliedMigrations(ctx context.Context) (map[int]Migration, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT version, name, description, applied_at FROM schema_migrations ORDER BY version`)
	if err != nil {
		return nil, fmt.Errorf("failed to query applied migrations: %w", err)
	}
	defer closeWithLog(rows, "rows")

	applied := make(map[int]Migration)
	for rows.Next() {
		var m Migration
		if err := rows.Scan(&m.Version, &m.Name, &m.Description, &m.AppliedAt); err != nil {
			return nil, fmt.Errorf("failed to scan migration row: %w", err)
		}
		applied[m.Version] = m
	}
	return applied, rows.Err()
}

// runVersionedMigrations executes only new migrations that haven't been applied yet.
func (db *DB) runVersionedMigrations() error {
	ctx, cancel := schemaContext()
	defer cancel()

	if err := db.createMigrationsTable(ctx); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := db.getAppliedMigrations(ctx)
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %w", err)
	}

	newMigrations := 0
	for _, m := range db.getMigrations() {
		if _, exists := applied[m.Version]; exists {
			continue
		}

		if _, err := db.conn.ExecContext(ctx, m.SQL); err != nil {
			return fmt.Errorf("failed to execute migration v%d (%s): %w", m.Version, m.Name, err)
		}

		_, err := db.conn.ExecContext(ctx,
			`INSERT INTO schema_migrations (version, name, description) VALUES (?, ?, ?)`,
			m.Version, m.Name, m.Description)
		if err != nil {
			return fmt.Errorf("failed to record migration v%d: %w", m.Version, err)
		}

		newMigrations++
	}

	if newMigrations > 0 {
		logging.Info().Int("count", newMigrations).Msg("Applied database migrations")
	}

	return nil
}

// GetCurrentSchemaVersion returns the highest applied migration version
func (db *DB) GetCurrentSchemaVersion(ctx context.Context) (int, error) {
	var version int
	err := db.conn.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}
	return version, nil
}
