// Cinecatalog - Movie Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecatalog

/*
Package models defines the data structures shared across Cinecatalog.

Key Components:

  - Movie, Actor, Genre: catalog entities as returned by the API, each
    carrying its many-to-many peers as flat summaries (MovieSummary,
    ActorSummary, GenreSummary)
  - MoviePatch, ActorPatch, GenrePatch: request bodies for create and
    partial update, built from tri-state Field values
  - Field[T]: absent / null / value, so PATCH can tell "not sent" apart
    from "sent empty"
  - Ref, Refs: association references, accepted as {"id": N} or N
  - Page[T], PageRequest, SortOrder: the paged listing envelope
  - Date: yyyy-MM-dd calendar date

Association Semantics:

An association field that is absent from a patch leaves the entity's peers
untouched. Present and empty clears them. Present and non-empty replaces
them. See package catalog for how replacement is reconciled.

Thread Safety:

All types are plain values with no internal synchronization.
*/
package models
