// Cinecatalog - Movie Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecatalog

package models

// Movie is a catalog movie with its genre and actor peers.
// Peers are rendered as summaries so the JSON graph never cycles.
type Movie struct {
	ID          int64          `json:"id"`
	Title       string         `json:"title"`
	ReleaseYear int            `json:"releaseYear"`
	Duration    int            `json:"duration"` // minutes
	Genres      []GenreSummary `json:"genres"`
	Actors      []ActorSummary `json:"actors"`
}

// Actor is a catalog actor with the movies they appear in.
type Actor struct {
	ID        int64          `json:"id"`
	Name      string         `json:"name"`
	BirthDate Date           `json:"birthDate"`
	Movies    []MovieSummary `json:"movies"`
}

// Genre is a catalog genre with the movies tagged with it.
type Genre struct {
	ID     int64          `json:"id"`
	Name   string         `json:"name"`
	Movies []MovieSummary `json:"movies"`
}

type MovieSummary struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	ReleaseYear int    `json:"releaseYear"`
	Duration    int    `json:"duration"`
}

type ActorSummary struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	BirthDate Date   `json:"birthDate"`
}

type GenreSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Summary returns the peer view of m.
func (m *Movie) Summary() MovieSummary {
	return MovieSummary{ID: m.ID, Title: m.Title, ReleaseYear: m.ReleaseYear, Duration: m.Duration}
}

func (a *Actor) Summary() ActorSummary {
	return ActorSummary{ID: a.ID, Name: a.Name, BirthDate: a.BirthDate}
}

func (g *Genre) Summary() GenreSummary {
	return GenreSummary{ID: g.ID, Name: g.Name}
}

// SearchResults is the combined search response. Each list is empty, never null.
type SearchResults struct {
	Movies []Movie `json:"movies"`
	Actors []Actor `json:"actors"`
	Genres []Genre `json:"genres"`
}
