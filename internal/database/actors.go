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

const actorColumns = "id, name, birth_date"

var actorSortColumns = map[string]string{
	"id":        "id",
	"name":      "name",
	"birthDate": "birth_date",
}

func scanActor(s scanner) (models.Actor, error) {
	var a models.Actor
	var birth time.Time
	if err := s.Scan(&a.ID, &a.Name, &birth); err != nil {
		return a, err
	}
	a.BirthDate = models.NewDate(birth)
	return a, nil
}

var actorPage = pageSpec[models.Actor]{
	table:    "actors",
	columns:  actorColumns,
	sortable: actorSortColumns,
	fallback: "name",
	scan:     scanActor,
}

// InsertActor stores a new actor row and returns its id.
func (q *Queries) InsertActor(ctx context.Context, a *models.Actor) (int64, error) {
	start := time.Now()
	var id int64
	err := q.q.QueryRowContext(ctx,
		`INSERT INTO actors (name, birth_date) VALUES (?, CAST(? AS DATE)) RETURNING id`,
		a.Name, a.BirthDate.String()).Scan(&id)
	observe("insert", "actors", start, err)
	if err != nil {
		return 0, mapUniqueError(fmt.Errorf("failed to insert actor: %w", err), ErrDuplicateActorName)
	}
	return id, nil
}

// UpdateActor writes the scalar fields of a.
func (q *Queries) UpdateActor(ctx context.Context, a *models.Actor) error {
	start := time.Now()
	res, err := q.q.ExecContext(ctx,
		`UPDATE actors SET name = ?, birth_date = CAST(? AS DATE), updated_at = current_timestamp WHERE id = ?`,
		a.Name, a.BirthDate.String(), a.ID)
	observe("update", "actors", start, err)
	if err != nil {
		return mapUniqueError(fmt.Errorf("failed to update actor: %w", err), ErrDuplicateActorName)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrActorNotFound
	}
	return nil
}

// GetActor returns one actor with their movies.
func (q *Queries) GetActor(ctx context.Context, id int64) (*models.Actor, error) {
	start := time.Now()
	a, err := scanActor(q.q.QueryRowContext(ctx,
		`SELECT `+actorColumns+` FROM actors WHERE id = ?`, id))
	observe("select", "actors", start, err)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrActorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get actor: %w", err)
	}

	actors := []models.Actor{a}
	if err := q.attachActorMovies(ctx, actors); err != nil {
		return nil, err
	}
	return &actors[0], nil
}

// DeleteActor removes the actor row. Join rows must already be gone.
func (q *Queries) DeleteActor(ctx context.Context, id int64) error {
	return q.deleteByID(ctx, "actors", id, ErrActorNotFound)
}

// ActorExists reports whether an actor with id exists.
func (q *Queries) ActorExists(ctx context.Context, id int64) (bool, error) {
	return q.exists(ctx, "actors", id)
}

// ListActors returns one page of all actors.
func (q *Queries) ListActors(ctx context.Context, req models.PageRequest) (models.Page[models.Actor], error) {
	return q.listActors(ctx, query.NewWhereBuilder(), req)
}

// SearchActors pages actors whose name contains term, ignoring case.
func (q *Queries) SearchActors(ctx context.Context, term string, req models.PageRequest) (models.Page[models.Actor], error) {
	return q.listActors(ctx, query.NewWhereBuilder().AddContains("name", term), req)
}

// ListActorsByMovie pages the cast of movieID.
func (q *Queries) ListActorsByMovie(ctx context.Context, movieID int64, req models.PageRequest) (models.Page[models.Actor], error) {
	wb := query.NewWhereBuilder().
		AddSubquery("id", "SELECT actor_id FROM movie_actors WHERE movie_id = ?", movieID)
	return q.listActors(ctx, wb, req)
}

func (q *Queries) listActors(ctx context.Context, wb *query.WhereBuilder, req models.PageRequest) (models.Page[models.Actor], error) {
	actors, total, err := fetchPage(ctx, q, actorPage, wb, req)
	if err != nil {
		return models.Page[models.Actor]{}, err
	}
	if err := q.attachActorMovies(ctx, actors); err != nil {
		return models.Page[models.Actor]{}, err
	}
	return models.NewPage(actors, total, req), nil
}

func (q *Queries) attachActorMovies(ctx context.Context, actors []models.Actor) error {
	if len(actors) == 0 {
		return nil
	}
	ids := make([]int64, len(actors))
	for i := range actors {
		ids[i] = actors[i].ID
	}

	movies, err := q.moviesForPeers(ctx, "movie_actors", "actor_id", ids)
	if err != nil {
		return err
	}
	for i := range actors {
		actors[i].Movies = movies[actors[i].ID]
		if actors[i].Movies == nil {
			actors[i].Movies = []models.MovieSummary{}
		}
	}
	return nil
}
