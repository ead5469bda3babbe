// Cinecatalog - Movie Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecatalog

// Package database provides DuckDB persistence for the movie catalog.
//
// # Overview
//
// The package owns the SQL schema and every query the catalog runs:
//   - database.go: connection lifecycle, pool tuning and WithTx
//   - schema.go: core tables and versioned migrations
//   - movies.go, actors.go, genres.go: per-entity CRUD, paging and search
//   - associations.go: join-table reads, link/unlink primitives and batched peer loading
//   - paging.go: shared COUNT + LIMIT/OFFSET paging
//
// # Schema
//
// Entities live in movies, actors and genres. Associations are id pairs in
// movie_genres and movie_actors. A pair row is the only record of membership,
// so both directions of an association are always consistent.
//
// # Transactions
//
// Reads can run directly on *DB. Multi-step writes go through WithTx:
//
//	err := db.WithTx(ctx, func(q *database.Queries) error {
//	    id, err := q.InsertMovie(ctx, movie)
//	    if err != nil {
//	        return err
//	    }
//	    return q.LinkMovieGenre(ctx, id, genreID)
//	})
//
// The transaction rolls back on any error. Nothing is retried.
//
// # Errors
//
// Missing rows map to ErrMovieNotFound, ErrActorNotFound and ErrGenreNotFound.
// Unique violations map to ErrDuplicateTitle, ErrDuplicateActorName and
// ErrDuplicateGenreName. Driver errors are wrapped with %w.
//
// # Thread Safety
//
// DB is safe for concurrent use. A *Queries handed out by WithTx must not
// be used after the callback returns.
package database
