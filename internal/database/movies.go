// Cinecatalog - Movie Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecatalog

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/cinecatalog/internal/database/query"
	"github.com/tomtom215/cinecatalog/internal/models"
)

const movieColumns = "id, title, release_year, duration"

var movieSortColumns = map[string]string{
	"id":          "id",
	"title":       "title",
	"releaseYear": "release_year",
	"duration":    "duration",
}

func scanMovie(s scanner) (models.Movie, error) {
	var m models.Movie
	err := s.Scan(&m.ID, &m.Title, &m.ReleaseYear, &m.Duration)
	return m, err
}

var moviePage = pageSpec[models.Movie]{
	table:    "movies",
	columns:  movieColumns,
	sortable: movieSortColumns,
	fallback: "title",
	scan:     scanMovie,
}

// InsertMovie stores a new movie row and returns its id.
func (q *Queries) InsertMovie(ctx context.Context, m *models.Movie) (int64, error) {
	start := time.Now()
	var id int64
	err := q.q.QueryRowContext(ctx,
		`INSERT INTO movies (title, release_year, duration) VALUES (?, ?, ?) RETURNING id`,
		m.Title, m.ReleaseYear, m.Duration).Scan(&id)
	observe("insert", "movies", start, err)
	if err != nil {
		return 0, mapUniqueError(fmt.Errorf("failed to insert movie: %w", err), ErrDuplicateTitle)
	}
	return id, nil
}

// UpdateMovie writes the scalar fields of m. Peers are handled separately.
func (q *Queries) UpdateMovie(ctx context.Context, m *models.Movie) error {
	start := time.Now()
	res, err := q.q.ExecContext(ctx,
		`UPDATE movies SET title = ?, release_year = ?, duration = ?, updated_at = current_timestamp WHERE id = ?`,
		m.Title, m.ReleaseYear, m.Duration, m.ID)
	observe("update", "movies", start, err)
	if err != nil {
		return mapUniqueError(fmt.Errorf("failed to update movie: %w", err), ErrDuplicateTitle)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrMovieNotFound
	}
	return nil
}

// GetMovie returns one movie with its genres and actors.
func (q *Queries) GetMovie(ctx context.Context, id int64) (*models.Movie, error) {
	start := time.Now()
	m, err := scanMovie(q.q.QueryRowContext(ctx,
		`SELECT `+movieColumns+` FROM movies WHERE id = ?`, id))
	observe("select", "movies", start, err)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMovieNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get movie: %w", err)
	}

	movies := []models.Movie{m}
	if err := q.attachMoviePeers(ctx, movies); err != nil {
		return nil, err
	}
	return &movies[0], nil
}

// DeleteMovie removes the movie row. Join rows must already be gone.
func (q *Queries) DeleteMovie(ctx context.Context, id int64) error {
	return q.deleteByID(ctx, "movies", id, ErrMovieNotFound)
}

// MovieExists reports whether a movie with id exists.
func (q *Queries) MovieExists(ctx context.Context, id int64) (bool, error) {
	return q.exists(ctx, "movies", id)
}

// ListMovies returns one page of all movies.
func (q *Queries) ListMovies(ctx context.Context, req models.PageRequest) (models.Page[models.Movie], error) {
	return q.listMovies(ctx, query.NewWhereBuilder(), req)
}

// SearchMovies pages movies whose title contains term, ignoring case.
func (q *Queries) SearchMovies(ctx context.Context, term string, req models.PageRequest) (models.Page[models.Movie], error) {
	return q.listMovies(ctx, query.NewWhereBuilder().AddContains("title", term), req)
}

// ListMoviesByGenre pages the movies tagged with genreID.
func (q *Queries) ListMoviesByGenre(ctx context.Context, genreID int64, req models.PageRequest) (models.Page[models.Movie], error) {
	wb := query.NewWhereBuilder().
		AddSubquery("id", "SELECT movie_id FROM movie_genres WHERE genre_id = ?", genreID)
	return q.listMovies(ctx, wb, req)
}

// ListMoviesByActor pages the movies actorID appears in.
func (q *Queries) ListMoviesByActor(ctx context.Context, actorID int64, req models.PageRequest) (models.Page[models.Movie], error) {
	wb := query.NewWhereBuilder().
		AddSubquery("id", "SELECT movie_id FROM movie_actors WHERE actor_id = ?", actorID)
	return q.listMovies(ctx, wb, req)
}

// ListMoviesByYear pages the movies released in year.
func (q *Queries) ListMoviesByYear(ctx context.Context, year int, req models.PageRequest) (models.Page[models.Movie], error) {
	return q.listMovies(ctx, query.NewWhereBuilder().AddEquals("release_year", year), req)
}

func (q *Queries) listMovies(ctx context.Context, wb *query.WhereBuilder, req models.PageRequest) (models.Page[models.Movie], error) {
	movies, total, err := fetchPage(ctx, q, moviePage, wb, req)
	if err != nil {
		return models.Page[models.Movie]{}, err
	}
	if err := q.attachMoviePeers(ctx, movies); err != nil {
		return models.Page[models.Movie]{}, err
	}
	return models.NewPage(movies, total, req), nil
}

// attachMoviePeers loads genres and actors for every movie with one query
// per relation.
func (q *Queries) attachMoviePeers(ctx context.Context, movies []models.Movie) error {
	if len(movies) == 0 {
		return nil
	}
	ids := make([]int64, len(movies))
	for i := range movies {
		ids[i] = movies[i].ID
	}

	genres, err := q.genresForMovies(ctx, ids)
	if err != nil {
		return err
	}
	actors, err := q.actorsForMovies(ctx, ids)
	if err != nil {
		return err
	}

	for i := range movies {
		movies[i].Genres = genres[movies[i].ID]
		if movies[i].Genres == nil {
			movies[i].Genres = []models.GenreSummary{}
		}
		movies[i].Actors = actors[movies[i].ID]
		if movies[i].Actors == nil {
			movies[i].Actors = []models.ActorSummary{}
		}
	}
	return nil
}
