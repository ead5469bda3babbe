// Cinecatalog - Movie Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecatalog

package api

import (
	"net/http"

	"github.com/tomtom215/cinecatalog/internal/models"
)

// CreateActor handles POST /api/actors.
func (h *Handler) CreateActor(w http.ResponseWriter, r *http.Request) {
	var patch models.ActorPatch
	if err := decodeJSON(r, &patch); err != nil {
		respondError(w, r, err)
		return
	}

	actor, err := h.svc.CreateActor(r.Context(), patch)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, actor)
}

// ListActors handles GET /api/actors.
func (h *Handler) ListActors(w http.ResponseWriter, r *http.Request) {
	req, err := h.pageRequest(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	page, err := h.svc.ListActors(r.Context(), req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

// GetActor handles GET /api/actors/{id}.
func (h *Handler) GetActor(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	actor, err := h.svc.GetActor(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, actor)
}

// UpdateActor handles PATCH /api/actors/{id}.
func (h *Handler) UpdateActor(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var patch models.ActorPatch
	if err := decodeJSON(r, &patch); err != nil {
		respondError(w, r, err)
		return
	}

	actor, err := h.svc.UpdateActor(r.Context(), id, patch)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, actor)
}

// DeleteActor handles DELETE /api/actors/{id}?force=.
func (h *Handler) DeleteActor(w http.ResponseWriter, r *http.Request) {
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

	if err := h.svc.DeleteActor(r.Context(), id, force); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SearchActors handles GET /api/actors/search?name=.
func (h *Handler) SearchActors(w http.ResponseWriter, r *http.Request) {
	req, err := h.pageRequest(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	page, err := h.svc.SearchActors(r.Context(), r.URL.Query().Get("name"), req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}
