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

const genreColumns = "id, name"

var genreSortColumns = map[string]string{
	"id":   "id",
	"name": "name",
}

func scanGenre(s scanner) (models.Genre, error) {
	var g models.Genre
	err := s.Scan(&g.ID, &g.Name)
	return g, err
}

var genrePage = pageSpec[models.Genre]{
	table:    "genres",
	columns:  genreColumns,
	sortable: genreSortColumns,
	fallback: "name",
	scan:     scanGenre,
}

// InsertGenre stores a new genre row and returns its id.
func (q *Queries) InsertGenre(ctx context.Context, g *models.Genre) (int64, error) {
	start := time.Now()
	var id int64
	err := q.q.QueryRowContext(ctx,
		`INSERT INTO genres (name) VALUES (?) RETURNING id`, g.Name).Scan(&id)
	observe("insert", "genres", start, err)
	if err != nil {
		return 0, mapUniqueError(fmt.Errorf("failed to insert genre: %w", err), ErrDuplicateGenreName)
	}
	return id, nil
}

// UpdateGenre writes the name of g.
func (q *Queries) UpdateGenre(ctx context.Context, g *models.Genre) error {
	start := time.Now()
	res, err := q.q.ExecContext(ctx,
		`UPDATE genres SET name = ?, updated_at = current_timestamp WHERE id = ?`, g.Name, g.ID)
	observe("update", "genres", start, err)
	if err != nil {
		return mapUniqueError(fmt.Errorf("failed to update genre: %w", err), ErrDuplicateGenreName)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrGenreNotFound
	}
	return nil
}

// GetGenre returns one genre with its movies.
func (q *Queries) GetGenre(ctx context.Context, id int64) (*models.Genre, error) {
	start := time.Now()
	g, err := scanGenre(q.q.QueryRowContext(ctx,
		`SELECT `+genreColumns+` FROM genres WHERE id = ?`, id))
	observe("select", "genres", start, err)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGenreNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get genre: %w", err)
	}

	genres := []models.Genre{g}
	if err := q.attachGenreMovies(ctx, genres); err != nil {
		return nil, err
	}
	return &genres[0], nil
}

// DeleteGenre removes the genre row. Join rows must already be gone.
func (q *Queries) DeleteGenre(ctx context.Context, id int64) error {
	return q.deleteByID(ctx, "genres", id, ErrGenreNotFound)
}

// GenreExists reports whether a genre with id exists.
func (q *Queries) GenreExists(ctx context.Context, id int64) (bool, error) {
	return q.exists(ctx, "genres", id)
}

// ListGenres returns one page of all genres.
func (q *Queries) ListGenres(ctx context.Context, req models.PageRequest) (models.Page[models.Genre], error) {
	return q.listGenres(ctx, query.NewWhereBuilder(), req)
}

// SearchGenres pages genres whose name contains term, ignoring case.
func (q *Queries) SearchGenres(ctx context.Context, term string, req models.PageRequest) (models.Page[models.Genre], error) {
	return q.listGenres(ctx, query.NewWhereBuilder().AddContains("name", term), req)
}

func (q *Queries) listGenres(ctx context.Context, wb *query.WhereBuilder, req models.PageRequest) (models.Page[models.Genre], error) {
	genres, total, err := fetchPage(ctx, q, genrePage, wb, req)
	if err != nil {
		return models.Page[models.Genre]{}, err
	}
	if err := q.attachGenreMovies(ctx, genres); err != nil {
		return models.Page[models.Genre]{}, err
	}
	return models.NewPage(genres, total, req), nil
}

func (q *Queries) attachGenreMovies(ctx context.Context, genres []models.Genre) error {
	if len(genres) == 0 {
		return nil
	}
	ids := make([]int64, len(genres))
	for i := range genres {
		ids[i] = genres[i].ID
	}

	movies, err := q.moviesForPeers(ctx, "movie_genres", "genre_id", ids)
	if err != nil {
		return err
	}
	for i := range genres {
		genres[i].Movies = movies[genres[i].ID]
		if genres[i].Movies == nil {
			genres[i].Movies = []models.MovieSummary{}
		}
	}
	return nil
}
