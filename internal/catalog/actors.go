// Cinecatalog - Movie Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecatalog

package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/tomtom215/cinecatalog/internal/database"
	"github.com/tomtom215/cinecatalog/internal/models"
	"github.com/tomtom215/cinecatalog/internal/validation"
)

type actorDraft struct {
	Name      *string    `json:"name" validate:"required,notblank,min=3,max=50"`
	BirthDate *time.Time `json:"birthDate" validate:"required,pastdate"`
}

var actorMessages = validation.Messages{
	"name.required":      "Name must not be null",
	"name.notblank":      "Name must not be blank",
	"name.min":           "Actor name must be between 3 and 50 characters",
	"name.max":           "Actor name must be between 3 and 50 characters",
	"birthDate.required": "Date of birth must not be null",
	"birthDate.pastdate": "Date of birth must be in the past",
}

func (d actorDraft) actor(id int64) *models.Actor {
	return &models.Actor{ID: id, Name: *d.Name, BirthDate: models.NewDate(*d.BirthDate)}
}

func birthDateOr(f models.Field[models.Date], fallback *time.Time) *time.Time {
	if !f.Present() {
		return fallback
	}
	t := f.Value.Time
	return &t
}

func actorError(err error, id int64) error {
	switch {
	case errors.Is(err, database.ErrActorNotFound):
		return NotFound("Actor not found with id: %d", id)
	case errors.Is(err, database.ErrDuplicateActorName):
		return Conflict(err, "Actor with the given name already exists.")
	}
	return err
}

// CreateActor validates p, resolves its movie references and stores the
// actor with its links in one transaction.
func (s *Service) CreateActor(ctx context.Context, p models.ActorPatch) (*models.Actor, error) {
	draft := actorDraft{
		Name:      trimmed(p.Name, nil),
		BirthDate: birthDateOr(p.BirthDate, nil),
	}
	if err := validate(draft, actorMessages); err != nil {
		return nil, err
	}

	var created *models.Actor
	tally := assocTally{}
	err := s.db.WithTx(ctx, func(q *database.Queries) error {
		movieIDs, err := actorMovies.resolve(ctx, q, p.Movies)
		if err != nil {
			return err
		}

		id, err := q.InsertActor(ctx, draft.actor(0))
		if err != nil {
			return actorError(err, 0)
		}
		if err := actorMovies.apply(ctx, q, id, p.Movies, movieIDs, tally); err != nil {
			return err
		}

		created, err = q.GetActor(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.committed(ctx, EntityActor, ActionCreated, created.ID, created.Name, tally)
	return created, nil
}

// GetActor returns the actor with their movies.
func (s *Service) GetActor(ctx context.Context, id int64) (*models.Actor, error) {
	a, err := s.db.GetActor(ctx, id)
	if err != nil {
		return nil, actorError(err, id)
	}
	return a, nil
}

// UpdateActor applies a partial update and reconciles the actor's movies.
func (s *Service) UpdateActor(ctx context.Context, id int64, p models.ActorPatch) (*models.Actor, error) {
	var updated *models.Actor
	tally := assocTally{}
	err := s.db.WithTx(ctx, func(q *database.Queries) error {
		existing, err := q.GetActor(ctx, id)
		if err != nil {
			return actorError(err, id)
		}

		birth := existing.BirthDate.Time
		draft := actorDraft{
			Name:      trimmed(p.Name, &existing.Name),
			BirthDate: birthDateOr(p.BirthDate, &birth),
		}
		if err := validate(draft, actorMessages); err != nil {
			return err
		}

		movieIDs, err := actorMovies.resolve(ctx, q, p.Movies)
		if err != nil {
			return err
		}

		next := draft.actor(id)
		if next.Name != existing.Name || !next.BirthDate.Equal(existing.BirthDate.Time) {
			if err := q.UpdateActor(ctx, next); err != nil {
				return actorError(err, id)
			}
		}
		if err := actorMovies.apply(ctx, q, id, p.Movies, movieIDs, tally); err != nil {
			return err
		}

		updated, err = q.GetActor(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.committed(ctx, EntityActor, ActionUpdated, updated.ID, updated.Name, tally)
	return updated, nil
}

// DeleteActor removes an actor. Without force, an actor with movies is kept.
func (s *Service) DeleteActor(ctx context.Context, id int64, force bool) error {
	var name string
	tally := assocTally{}
	err := s.db.WithTx(ctx, func(q *database.Queries) error {
		a, err := q.GetActor(ctx, id)
		if err != nil {
			return actorError(err, id)
		}
		name = a.Name

		if !force && len(a.Movies) > 0 {
			return rejectDelete(EntityActor,
				"Unable to delete actor '%s' because they have %d associated movie(s)", a.Name, len(a.Movies))
		}

		n, err := q.ClearActorMovies(ctx, id)
		if err != nil {
			return err
		}
		tally.add(actorMovies.table, 0, int(n))

		return actorError(q.DeleteActor(ctx, id), id)
	})
	if err != nil {
		return err
	}

	s.committed(ctx, EntityActor, ActionDeleted, id, name, tally)
	return nil
}

// ListActors pages all actors.
func (s *Service) ListActors(ctx context.Context, req models.PageRequest) (models.Page[models.Actor], error) {
	if err := s.CheckPage(req); err != nil {
		return models.Page[models.Actor]{}, err
	}
	page, err := s.db.ListActors(ctx, req)
	if err != nil {
		return page, listError(err, req)
	}
	return page, nil
}

// SearchActors pages actors whose name contains name. No match is NotFound.
func (s *Service) SearchActors(ctx context.Context, name string, req models.PageRequest) (models.Page[models.Actor], error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Page[models.Actor]{}, MissingParameter("name")
	}
	if err := s.CheckPage(req); err != nil {
		return models.Page[models.Actor]{}, err
	}
	page, err := s.db.SearchActors(ctx, name, req)
	if err != nil {
		return page, listError(err, req)
	}
	if page.Empty() {
		return page, NotFound("No actors found with name containing: %s", name)
	}
	return page, nil
}
