// Cinecatalog - Movie Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecatalog

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/cinecatalog/internal/database/query"
	"github.com/tomtom215/cinecatalog/internal/models"
)

// Association membership lives only in the join tables. A pair row is the
// single source of truth for both sides, so Link/Unlink keep the movie view
// and the genre/actor view consistent without further bookkeeping.

// MovieGenreIDs returns the ids of the genres linked to movieID, ascending.
func (q *Queries) MovieGenreIDs(ctx context.Context, movieID int64) ([]int64, error) {
	ids, err := q.queryIDs(ctx, "movie_genres",
		`SELECT genre_id FROM movie_genres WHERE movie_id = ? ORDER BY genre_id`, movieID)
	if err != nil {
		return nil, fmt.Errorf("failed to read genres of movie %d: %w", movieID, err)
	}
	return ids, nil
}

// GenreMovieIDs returns the ids of the movies linked to genreID, ascending.
func (q *Queries) GenreMovieIDs(ctx context.Context, genreID int64) ([]int64, error) {
	ids, err := q.queryIDs(ctx, "movie_genres",
		`SELECT movie_id FROM movie_genres WHERE genre_id = ? ORDER BY movie_id`, genreID)
	if err != nil {
		return nil, fmt.Errorf("failed to read movies of genre %d: %w", genreID, err)
	}
	return ids, nil
}

// MovieActorIDs returns the ids of the actors linked to movieID, ascending.
func (q *Queries) MovieActorIDs(ctx context.Context, movieID int64) ([]int64, error) {
	ids, err := q.queryIDs(ctx, "movie_actors",
		`SELECT actor_id FROM movie_actors WHERE movie_id = ? ORDER BY actor_id`, movieID)
	if err != nil {
		return nil, fmt.Errorf("failed to read actors of movie %d: %w", movieID, err)
	}
	return ids, nil
}

// ActorMovieIDs returns the ids of the movies linked to actorID, ascending.
func (q *Queries) ActorMovieIDs(ctx context.Context, actorID int64) ([]int64, error) {
	ids, err := q.queryIDs(ctx, "movie_actors",
		`SELECT movie_id FROM movie_actors WHERE actor_id = ? ORDER BY movie_id`, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to read movies of actor %d: %w", actorID, err)
	}
	return ids, nil
}

// LinkMovieGenre adds the pair. Linking an existing pair is a no-op.
func (q *Queries) LinkMovieGenre(ctx context.Context, movieID, genreID int64) error {
	return q.execPair(ctx, "insert", "movie_genres",
		`INSERT INTO movie_genres (movie_id, genre_id) VALUES (?, ?) ON CONFLICT DO NOTHING`,
		movieID, genreID)
}

// UnlinkMovieGenre removes the pair if present.
func (q *Queries) UnlinkMovieGenre(ctx context.Context, movieID, genreID int64) error {
	return q.execPair(ctx, "delete", "movie_genres",
		`DELETE FROM movie_genres WHERE movie_id = ? AND genre_id = ?`,
		movieID, genreID)
}

// LinkMovieActor adds the pair. Linking an existing pair is a no-op.
func (q *Queries) LinkMovieActor(ctx context.Context, movieID, actorID int64) error {
	return q.execPair(ctx, "insert", "movie_actors",
		`INSERT INTO movie_actors (movie_id, actor_id) VALUES (?, ?) ON CONFLICT DO NOTHING`,
		movieID, actorID)
}

// UnlinkMovieActor removes the pair if present.
func (q *Queries) UnlinkMovieActor(ctx context.Context, movieID, actorID int64) error {
	return q.execPair(ctx, "delete", "movie_actors",
		`DELETE FROM movie_actors WHERE movie_id = ? AND actor_id = ?`,
		movieID, actorID)
}

// ClearMovieGenres unlinks every genre from movieID and returns the count removed.
func (q *Queries) ClearMovieGenres(ctx context.Context, movieID int64) (int64, error) {
	return q.clear(ctx, "movie_genres", "movie_id", movieID)
}

// ClearMovieActors unlinks every actor from movieID.
func (q *Queries) ClearMovieActors(ctx context.Context, movieID int64) (int64, error) {
	return q.clear(ctx, "movie_actors", "movie_id", movieID)
}

// ClearGenreMovies unlinks every movie from genreID.
func (q *Queries) ClearGenreMovies(ctx context.Context, genreID int64) (int64, error) {
	return q.clear(ctx, "movie_genres", "genre_id", genreID)
}

// ClearActorMovies unlinks every movie from actorID.
func (q *Queries) ClearActorMovies(ctx context.Context, actorID int64) (int64, error) {
	return q.clear(ctx, "movie_actors", "actor_id", actorID)
}

func (q *Queries) execPair(ctx context.Context, operation, table, stmt string, left, right int64) error {
	start := time.Now()
	_, err := q.q.ExecContext(ctx, stmt, left, right)
	observe(operation, table, start, err)
	if err != nil {
		return fmt.Errorf("failed to %s %s pair (%d, %d): %w", operation, table, left, right, err)
	}
	return nil
}

func (q *Queries) clear(ctx context.Context, table, column string, id int64) (int64, error) {
	start := time.Now()
	res, err := q.q.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE %s = ?", table, column), id)
	observe("delete", table, start, err)
	if err != nil {
		return 0, fmt.Errorf("failed to clear %s for %s %d: %w", table, column, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return n, nil
}

// genresForMovies batch-loads genre summaries keyed by movie id, sorted by name.
func (q *Queries) genresForMovies(ctx context.Context, movieIDs []int64) (map[int64][]models.GenreSummary, error) {
	where, args := query.NewWhereBuilder().AddIn("mg.movie_id", movieIDs).BuildWithPrefix()

	start := time.Now()
	rows, err := q.q.QueryContext(ctx, `
		SELECT mg.movie_id, g.id, g.name
		FROM movie_genres mg
		JOIN genres g ON g.id = mg.genre_id
		`+where+`
		ORDER BY g.name, g.id`, args...)
	observe("select", "movie_genres", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to load movie genres: %w", err)
	}
	defer closeWithLog(rows, "rows")

	out := make(map[int64][]models.GenreSummary, len(movieIDs))
	for rows.Next() {
		var movieID int64
		var g models.GenreSummary
		if err := rows.Scan(&movieID, &g.ID, &g.Name); err != nil {
			return nil, fmt.Errorf("failed to scan movie genre: %w", err)
		}
		out[movieID] = append(out[movieID], g)
	}
	return out, rows.Err()
}

// actorsForMovies batch-loads actor summaries keyed by movie id, sorted by name.
func (q *Queries) actorsForMovies(ctx context.Context, movieIDs []int64) (map[int64][]models.ActorSummary, error) {
	where, args := query.NewWhereBuilder().AddIn("ma.movie_id", movieIDs).BuildWithPrefix()

	start := time.Now()
	rows, err := q.q.QueryContext(ctx, `
		SELECT ma.movie_id, a.id, a.name, a.birth_date
		FROM movie_actors ma
		JOIN actors a ON a.id = ma.actor_id
		`+where+`
		ORDER BY a.name, a.id`, args...)
	observe("select", "movie_actors", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to load movie actors: %w", err)
	}
	defer closeWithLog(rows, "rows")

	out := make(map[int64][]models.ActorSummary, len(movieIDs))
	for rows.Next() {
		var movieID int64
		var a models.ActorSummary
		var birth time.Time
		if err := rows.Scan(&movieID, &a.ID, &a.Name, &birth); err != nil {
			return nil, fmt.Errorf("failed to scan movie actor: %w", err)
		}
		a.BirthDate = models.NewDate(birth)
		out[movieID] = append(out[movieID], a)
	}
	return out, rows.Err()
}

// moviesForPeers batch-loads movie summaries keyed by the peer id in
// joinTable.peerColumn, sorted by title.
func (q *Queries) moviesForPeers(ctx context.Context, joinTable, peerColumn string, peerIDs []int64) (map[int64][]models.MovieSummary, error) {
	where, args := query.NewWhereBuilder().AddIn("j."+peerColumn, peerIDs).BuildWithPrefix()

	start := time.Now()
	rows, err := q.q.QueryContext(ctx, fmt.Sprintf(`
		SELECT j.%s, m.id, m.title, m.release_year, m.duration
		FROM %s j
		JOIN movies m ON m.id = j.movie_id
		%s
		ORDER BY m.title, m.id`, peerColumn, joinTable, where), args...)
	observe("select", joinTable, start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s movies: %w", joinTable, err)
	}
	defer closeWithLog(rows, "rows")

	out := make(map[int64][]models.MovieSummary, len(peerIDs))
	for rows.Next() {
		var peerID int64
		var m models.MovieSummary
		if err := rows.Scan(&peerID, &m.ID, &m.Title, &m.ReleaseYear, &m.Duration); err != nil {
			return nil, fmt.Errorf("failed to scan %s movie: %w", joinTable, err)
		}
		out[peerID] = append(out[peerID], m)
	}
	return out, rows.Err()
}
