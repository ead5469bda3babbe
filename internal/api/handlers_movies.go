// Cinecatalog - Movie Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecatalog

package api

import (
	"net/http"

	"github.com/tomtom215/cinecatalog/internal/models"
)

// CreateMovie handles POST /api/movies.
func (h *Handler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var patch models.MoviePatch
	if err := decodeJSON(r, &patch); err != nil {
		respondError(w, r, err)
		return
	}

	movie, err := h.svc.CreateMovie(r.Context(), patch)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, movie)
}

// ListMovies handles GET /api/movies. At most one filter applies, checked
// in the order genre, year, actor.
func (h *Handler) ListMovies(w http.ResponseWriter, r *http.Request) {
	req, err := h.pageRequest(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	genreID, hasGenre, err := queryInt64(r, "genre")
	if err != nil {
		respondError(w, r, err)
		return
	}
	year, hasYear, err := queryInt64(r, "year")
	if err != nil {
		respondError(w, r, err)
		return
	}
	actorID, hasActor, err := queryInt64(r, "actor")
	if err != nil {
		respondError(w, r, err)
		return
	}

	var page models.Page[models.Movie]
	switch {
	case hasGenre:
		page, err = h.svc.ListMoviesByGenre(r.Context(), genreID, req)
	case hasYear:
		page, err = h.svc.ListMoviesByYear(r.Context(), int(year), req)
	case hasActor:
		page, err = h.svc.ListMoviesByActor(r.Context(), actorID, req)
	default:
		page, err = h.svc.ListMovies(r.Context(), req)
	}
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

// GetMovie handles GET /api/movies/{id}.
func (h *Handler) GetMovie(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	movie, err := h.svc.GetMovie(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, movie)
}

// UpdateMovie handles PATCH /api/movies/{id}.
func (h *Handler) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var patch models.MoviePatch
	if err := decodeJSON(r, &patch); err != nil {
		respondError(w, r, err)
		return
	}

	movie, err := h.svc.UpdateMovie(r.Context(), id, patch)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, movie)
}

// DeleteMovie handles DELETE /api/movies/{id}?force=.
func (h *Handler) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	force, err := queryBool(r, "force", false)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := h.svc.DeleteMovie(r.Context(), id, force); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SearchMovies handles GET /api/movies/search?title=.
func (h *Handler) SearchMovies(w http.ResponseWriter, r *http.Request) {
	req, err := h.pageRequest(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	page, err := h.svc.SearchMovies(r.Context(), r.URL.Query().Get("title"), req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

// MovieActors handles GET /api/movies/{id}/actors.
func (h *Handler) MovieActors(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	req, err := h.pageRequest(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	page, err := h.svc.ListMovieActors(r.Context(), id, req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}
