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

type movieDraft struct {
	Title       *string `json:"title" validate:"required,notblank,min=1,max=100"`
	ReleaseYear *int    `json:"releaseYear" validate:"required,min=1900,max=2100"`
	Duration    *int    `json:"duration" validate:"required,min=1,max=1000"`
}

var movieMessages = validation.Messages{
	"title.required":       "Title must not be null.",
	"title.notblank":       "Title must not be blank.",
	"title.min":            "Movie title must be between 1 and 100 characters.",
	"title.max":            "Movie title must be between 1 and 100 characters.",
	"releaseYear.required": "Release year must not be null.",
	"releaseYear.min":      "Release year must be between 1900 and 2100.",
	"releaseYear.max":      "Release year must be between 1900 and 2100.",
	"duration.required":    "Duration must not be null.",
	"duration.min":         "Duration must be between 1 and 1000.",
	"duration.max":         "Duration must be between 1 and 1000.",
}

func (d movieDraft) movie(id int64) *models.Movie {
	return &models.Movie{ID: id, Title: *d.Title, ReleaseYear: *d.ReleaseYear, Duration: *d.Duration}
}

func movieError(err error, id int64) error {
	switch {
	case errors.Is(err, database.ErrMovieNotFound):
		return NotFound("Movie not found with id: %d", id)
	case errors.Is(err, database.ErrDuplicateTitle):
		return Conflict(err, "Movie with the given title already exists.")
	}
	return err
}

// CreateMovie validates p, resolves its genre and actor references and stores
// the movie with its links in one transaction.
func (s *Service) CreateMovie(ctx context.Context, p models.MoviePatch) (*models.Movie, error) {
	draft := movieDraft{
		Title:       trimmed(p.Title, nil),
		ReleaseYear: intOr(p.ReleaseYear, nil),
		Duration:    intOr(p.Duration, nil),
	}
	if err := validate(draft, movieMessages); err != nil {
		return nil, err
	}

	var created *models.Movie
	tally := assocTally{}
	err := s.db.WithTx(ctx, func(q *database.Queries) error {
		genreIDs, err := movieGenres.resolve(ctx, q, p.Genres)
		if err != nil {
			return err
		}
		actorIDs, err := movieActors.resolve(ctx, q, p.Actors)
		if err != nil {
			return err
		}

		id, err := q.InsertMovie(ctx, draft.movie(0))
		if err != nil {
			return movieError(err, 0)
		}
		if err := movieGenres.apply(ctx, q, id, p.Genres, genreIDs, tally); err != nil {
			return err
		}
		if err := movieActors.apply(ctx, q, id, p.Actors, actorIDs, tally); err != nil {
			return err
		}

		created, err = q.GetMovie(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.committed(ctx, EntityMovie, ActionCreated, created.ID, created.Title, tally)
	return created, nil
}

// GetMovie returns the movie with its genres and actors.
func (s *Service) GetMovie(ctx context.Context, id int64) (*models.Movie, error) {
	m, err := s.db.GetMovie(ctx, id)
	if err != nil {
		return nil, movieError(err, id)
	}
	return m, nil
}

// UpdateMovie applies a partial update. Scalar fields change only when
// present and non-null. Genres and actors are reconciled independently.
func (s *Service) UpdateMovie(ctx context.Context, id int64, p models.MoviePatch) (*models.Movie, error) {
	var updated *models.Movie
	tally := assocTally{}
	err := s.db.WithTx(ctx, func(q *database.Queries) error {
		existing, err := q.GetMovie(ctx, id)
		if err != nil {
			return movieError(err, id)
		}

		draft := movieDraft{
			Title:       trimmed(p.Title, &existing.Title),
			ReleaseYear: intOr(p.ReleaseYear, &existing.ReleaseYear),
			Duration:    intOr(p.Duration, &existing.Duration),
		}
		if err := validate(draft, movieMessages); err != nil {
			return err
		}

		genreIDs, err := movieGenres.resolve(ctx, q, p.Genres)
		if err != nil {
			return err
		}
		actorIDs, err := movieActors.resolve(ctx, q, p.Actors)
		if err != nil {
			return err
		}

		next := draft.movie(id)
		if next.Title != existing.Title || next.ReleaseYear != existing.ReleaseYear || next.Duration != existing.Duration {
			if err := q.UpdateMovie(ctx, next); err != nil {
				return movieError(err, id)
			}
		}
		if err := movieGenres.apply(ctx, q, id, p.Genres, genreIDs, tally); err != nil {
			return err
		}
		if err := movieActors.apply(ctx, q, id, p.Actors, actorIDs, tally); err != nil {
			return err
		}

		updated, err = q.GetMovie(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.committed(ctx, EntityMovie, ActionUpdated, updated.ID, updated.Title, tally)
	return updated, nil
}

// DeleteMovie removes a movie. Without force, a movie with any genre or
// actor is kept and InvalidOperation is returned.
func (s *Service) DeleteMovie(ctx context.Context, id int64, force bool) error {
	var title string
	tally := assocTally{}
	err := s.db.WithTx(ctx, func(q *database.Queries) error {
		m, err := q.GetMovie(ctx, id)
		if err != nil {
			return movieError(err, id)
		}
		title = m.Title

		if !force && (len(m.Genres) > 0 || len(m.Actors) > 0) {
			return rejectDelete(EntityMovie,
				"Unable to delete movie '%s' because it has associated genre(s) or actor(s)", m.Title)
		}

		genres, err := q.ClearMovieGenres(ctx, id)
		if err != nil {
			return err
		}
		actors, err := q.ClearMovieActors(ctx, id)
		if err != nil {
			return err
		}
		tally.add(movieGenres.table, 0, int(genres))
		tally.add(movieActors.table, 0, int(actors))

		return movieError(q.DeleteMovie(ctx, id), id)
	})
	if err != nil {
		return err
	}

	s.committed(ctx, EntityMovie, ActionDeleted, id, title, tally)
	return nil
}

// ListMovies pages all movies. An empty page is not an error.
func (s *Service) ListMovies(ctx context.Context, req models.PageRequest) (models.Page[models.Movie], error) {
	if err := s.CheckPage(req); err != nil {
		return models.Page[models.Movie]{}, err
	}
	page, err := s.db.ListMovies(ctx, req)
	if err != nil {
		return page, listError(err, req)
	}
	return page, nil
}

// SearchMovies pages movies whose title contains title. No match is NotFound.
func (s *Service) SearchMovies(ctx context.Context, title string, req models.PageRequest) (models.Page[models.Movie], error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Page[models.Movie]{}, MissingParameter("title")
	}
	if err := s.CheckPage(req); err != nil {
		return models.Page[models.Movie]{}, err
	}
	page, err := s.db.SearchMovies(ctx, title, req)
	if err != nil {
		return page, listError(err, req)
	}
	if page.Empty() {
		return page, NotFound("No movies found with title containing: %s", title)
	}
	return page, nil
}

// ListMoviesByGenre pages the movies of an existing genre.
func (s *Service) ListMoviesByGenre(ctx context.Context, genreID int64, req models.PageRequest) (models.Page[models.Movie], error) {
	if err := s.CheckPage(req); err != nil {
		return models.Page[models.Movie]{}, err
	}
	ok, err := s.db.GenreExists(ctx, genreID)
	if err != nil {
		return models.Page[models.Movie]{}, err
	}
	if !ok {
		return models.Page[models.Movie]{}, NotFound("Genre not found with id: %d", genreID)
	}

	page, err := s.db.ListMoviesByGenre(ctx, genreID, req)
	if err != nil {
		return page, listError(err, req)
	}
	if page.Empty() {
		return page, NotFound("Movies not found with genre id: %d", genreID)
	}
	return page, nil
}

// ListMoviesByActor pages the movies of an existing actor.
func (s *Service) ListMoviesByActor(ctx context.Context, actorID int64, req models.PageRequest) (models.Page[models.Movie], error) {
	if err := s.CheckPage(req); err != nil {
		return models.Page[models.Movie]{}, err
	}
	ok, err := s.db.ActorExists(ctx, actorID)
	if err != nil {
		return models.Page[models.Movie]{}, err
	}
	if !ok {
		return models.Page[models.Movie]{}, NotFound("Actor not found with id: %d", actorID)
	}

	page, err := s.db.ListMoviesByActor(ctx, actorID, req)
	if err != nil {
		return page, listError(err, req)
	}
	if page.Empty() {
		return page, NotFound("No associated movies found for actor with id: %d", actorID)
	}
	return page, nil
}

// ListMoviesByYear pages the movies released in year.
func (s *Service) ListMoviesByYear(ctx context.Context, year int, req models.PageRequest) (models.Page[models.Movie], error) {
	if err := s.CheckPage(req); err != nil {
		return models.Page[models.Movie]{}, err
	}
	page, err := s.db.ListMoviesByYear(ctx, year, req)
	if err != nil {
		return page, listError(err, req)
	}
	if page.Empty() {
		return page, NotFound("Movies not found with release year: %d", year)
	}
	return page, nil
}

// ListMovieActors pages the cast of an existing movie.
func (s *Service) ListMovieActors(ctx context.Context, movieID int64, req models.PageRequest) (models.Page[models.Actor], error) {
	if err := s.CheckPage(req); err != nil {
		return models.Page[models.Actor]{}, err
	}
	ok, err := s.db.MovieExists(ctx, movieID)
	if err != nil {
		return models.Page[models.Actor]{}, err
	}
	if !ok {
		return models.Page[models.Actor]{}, NotFound("Movie not found with id: %d", movieID)
	}

	page, err := s.db.ListActorsByMovie(ctx, movieID, req)
	if err != nil {
		return page, listError(err, req)
	}
	if page.Empty() {
		return page, NotFound("No associated actors found for movie with id: %d", movieID)
	}
	return page, nil
}
