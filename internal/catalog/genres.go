// Cinecatalog - Movie Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecatalog

package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/tomtom215/cinecatalog/internal/database"
	"github.com/tomtom215/cinecatalog/internal/models"
	"github.com/tomtom215/cinecatalog/internal/validation"
)

type genreDraft struct {
	Name *string `json:"name" validate:"required,notblank,min=1,max=20"`
}

var genreMessages = validation.Messages{
	"name.required": "Name must not be null",
	"name.notblank": "Name must not be blank",
	"name.min":      "Genre name must be between 1 and 20 characters",
	"name.max":      "Genre name must be between 1 and 20 characters",
}

func genreError(err error, id int64) error {
	switch {
	case errors.Is(err, database.ErrGenreNotFound):
		return NotFound("Genre not found with id: %d", id)
	case errors.Is(err, database.ErrDuplicateGenreName):
		return Conflict(err, "Genre with the given name already exists.")
	}
	return err
}

// CreateGenre validates p, resolves its movie references and stores the
// genre with its links in one transaction.
func (s *Service) CreateGenre(ctx context.Context, p models.GenrePatch) (*models.Genre, error) {
	draft := genreDraft{Name: trimmed(p.Name, nil)}
	if err := validate(draft, genreMessages); err != nil {
		return nil, err
	}

	var created *models.Genre
	tally := assocTally{}
	err := s.db.WithTx(ctx, func(q *database.Queries) error {
		movieIDs, err := genreMovies.resolve(ctx, q, p.Movies)
		if err != nil {
			return err
		}

		id, err := q.InsertGenre(ctx, &models.Genre{Name: *draft.Name})
		if err != nil {
			return genreError(err, 0)
		}
		if err := genreMovies.apply(ctx, q, id, p.Movies, movieIDs, tally); err != nil {
			return err
		}

		created, err = q.GetGenre(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.committed(ctx, EntityGenre, ActionCreated, created.ID, created.Name, tally)
	return created, nil
}

// GetGenre returns the genre with its movies.
func (s *Service) GetGenre(ctx context.Context, id int64) (*models.Genre, error) {
	g, err := s.db.GetGenre(ctx, id)
	if err != nil {
		return nil, genreError(err, id)
	}
	return g, nil
}

// UpdateGenre applies a partial update and reconciles the genre's movies.
func (s *Service) UpdateGenre(ctx context.Context, id int64, p models.GenrePatch) (*models.Genre, error) {
	var updated *models.Genre
	tally := assocTally{}
	err := s.db.WithTx(ctx, func(q *database.Queries) error {
		existing, err := q.GetGenre(ctx, id)
		if err != nil {
			return genreError(err, id)
		}

		draft := genreDraft{Name: trimmed(p.Name, &existing.Name)}
		if err := validate(draft, genreMessages); err != nil {
			return err
		}

		movieIDs, err := genreMovies.resolve(ctx, q, p.Movies)
		if err != nil {
			return err
		}

		if *draft.Name != existing.Name {
			if err := q.UpdateGenre(ctx, &models.Genre{ID: id, Name: *draft.Name}); err != nil {
				return genreError(err, id)
			}
		}
		if err := genreMovies.apply(ctx, q, id, p.Movies, movieIDs, tally); err != nil {
			return err
		}

		updated, err = q.GetGenre(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.committed(ctx, EntityGenre, ActionUpdated, updated.ID, updated.Name, tally)
	return updated, nil
}

// DeleteGenre removes a genre. Without force, a genre with movies is kept.
func (s *Service) DeleteGenre(ctx context.Context, id int64, force bool) error {
	var name string
	tally := assocTally{}
	err := s.db.WithTx(ctx, func(q *database.Queries) error {
		g, err := q.GetGenre(ctx, id)
		if err != nil {
			return genreError(err, id)
		}
		name = g.Name

		if !force && len(g.Movies) > 0 {
			return rejectDelete(EntityGenre,
				"Cannot delete genre '%s' because it has %d associated movie(s).", g.Name, len(g.Movies))
		}

		n, err := q.ClearGenreMovies(ctx, id)
		if err != nil {
			return err
		}
		tally.add(genreMovies.table, 0, int(n))

		return genreError(q.DeleteGenre(ctx, id), id)
	})
	if err != nil {
		return err
	}

	s.committed(ctx, EntityGenre, ActionDeleted, id, name, tally)
	return nil
}

// ListGenres pages all genres.
func (s *Service) ListGenres(ctx context.Context, req models.PageRequest) (models.Page[models.Genre], error) {
	if err := s.CheckPage(req); err != nil {
		return models.Page[models.Genre]{}, err
	}
	page, err := s.db.ListGenres(ctx, req)
	if err != nil {
		return page, listError(err, req)
	}
	return page, nil
}

// SearchGenres pages genres whose name contains name. No match is NotFound.
func (s *Service) SearchGenres(ctx context.Context, name string, req models.PageRequest) (models.Page[models.Genre], error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Page[models.Genre]{}, MissingParameter("name")
	}
	if err := s.CheckPage(req); err != nil {
		return models.Page[models.Genre]{}, err
	}
	page, err := s.db.SearchGenres(ctx, name, req)
	if err != nil {
		return page, listError(err, req)
	}
	if page.Empty() {
		return page, NotFound("No genres found with name containing: %s", name)
	}
	return page, nil
}
