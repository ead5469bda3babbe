// Cinecatalog - Movie Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecatalog

package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/tomtom215/cinecatalog/internal/models"
)

// Search runs the movie, actor and genre searches with the same term.
// Each list holds at most MaxPageSize entries. A search with no match yields
// an empty list; any other failure is returned.
func (s *Service) Search(ctx context.Context, term string) (*models.SearchResults, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, MissingParameter("query")
	}

	req := models.PageRequest{Page: 0, Size: s.maxPageSize}
	results := &models.SearchResults{
		Movies: []models.Movie{},
		Actors: []models.Actor{},
		Genres: []models.Genre{},
	}

	movies, err := s.SearchMovies(ctx, term, req)
	if err := tolerateNotFound(err); err != nil {
		return nil, err
	}
	if err == nil {
		results.Movies = movies.Content
	}

	actors, err := s.SearchActors(ctx, term, req)
	if err := tolerateNotFound(err); err != nil {
		return nil, err
	}
	if err == nil {
		results.Actors = actors.Content
	}

	genres, err := s.SearchGenres(ctx, term, req)
	if err := tolerateNotFound(err); err != nil {
		return nil, err
	}
	if err == nil {
		results.Genres = genres.Content
	}

	return results, nil
}

func tolerateNotFound(err error) error {
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}
