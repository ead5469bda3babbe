// Cinecatalog - Movie Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecatalog

package api

import (
	"net/http"

	"github.com/tomtom215/cinecatalog/internal/models"
)

// CreateGenre handles POST /api/genres.
func (h *Handler) CreateGenre(w http.ResponseWriter, r *http.Request) {
	var patch models.GenrePatch
	if err := decodeJSON(r, &patch); err != nil {
		respondError(w, r, err)
		return
	}

	genre, err := h.svc.CreateGenre(r.Context(), patch)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, genre)
}

// ListGenres handles GET /api/genres.
func (h *Handler) ListGenres(w http.ResponseWriter, r *http.Request) {
	req, err := h.pageRequest(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	page, err := h.svc.ListGenres(r.Context(), req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

// GetGenre handles GET /api/genres/{id}.
func (h *Handler) GetGenre(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	genre, err := h.svc.GetGenre(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, genre)
}

// UpdateGenre handles PATCH /api/genres/{id}.
func (h *Handler) UpdateGenre(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var patch models.GenrePatch
	if err := decodeJSON(r, &patch); err != nil {
		respondError(w, r, err)
		return
	}

	genre, err := h.svc.UpdateGenre(r.Context(), id, patch)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, genre)
}

// DeleteGenre handles DELETE /api/genres/{id}?force=.
func (h *Handler) DeleteGenre(w http.ResponseWriter, r *http.Request) {
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

	if err := h.svc.DeleteGenre(r.Context(), id, force); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SearchGenres handles GET /api/genres/search?name=.
func (h *Handler) SearchGenres(w http.ResponseWriter, r *http.Request) {
	req, err := h.pageRequest(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	page, err := h.svc.SearchGenres(r.Context(), r.URL.Query().Get("name"), req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}
