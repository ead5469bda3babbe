// Cinecatalog - Movie Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecatalog

package query

import (
	"errors"
	"testing"
)

func TestWhereBuilder_Empty(t *testing.T) {
	wb := NewWhereBuilder()

	if !wb.IsEmpty() {
		t.Error("Expected new builder to be empty")
	}

	if wb.Count() != 0 {
		t.Errorf("Expected count 0, got %d", wb.Count())
	}

	whereClause, args := wb.Build()
	if whereClause != "1=1" {
		t.Errorf("Expected '1=1' for empty builder, got %q", whereClause)
	}
	if len(args) != 0 {
		t.Errorf("Expected 0 args, got %d", len(args))
	}
}

func TestWhereBuilder_AddIn(t *testing.T) {
	wb := NewWhereBuilder()
	wb.AddIn("movie_id", []int64{3, 1, 2})

	whereClause, args := wb.Build()
	expected := "movie_id IN (?, ?, ?)"
	if whereClause != expected {
		t.Errorf("Expected %q, got %q", expected, whereClause)
	}
	if len(args) != 3 || args[0] != int64(3) {
		t.Errorf("Unexpected args %v", args)
	}
}

func TestWhereBuilder_AddInEmpty(t *testing.T) {
	whereClause, args := NewWhereBuilder().AddIn("id", nil).Build()
	if whereClause != "1=0" {
		t.Errorf("Expected '1=0', got %q", whereClause)
	}
	if len(args) != 0 {
		t.Errorf("Expected 0 args, got %d", len(args))
	}
}

func TestWhereBuilder_Combined(t *testing.T) {
	wb := NewWhereBuilder()
	wb.AddContains("title", "Die")
	wb.AddEquals("release_year", 1988)
	wb.AddSubquery("id", "SELECT movie_id FROM movie_genres WHERE genre_id = ?", int64(7))

	whereClause, args := wb.BuildWithPrefix()
	expected := "WHERE contains(lower(title), lower(?)) AND release_year = ? AND id IN (SELECT movie_id FROM movie_genres WHERE genre_id = ?)"
	if whereClause != expected {
		t.Errorf("Expected %q, got %q", expected, whereClause)
	}
	if len(args) != 3 {
		t.Fatalf("Expected 3 args, got %d", len(args))
	}
	if args[0] != "Die" || args[1] != 1988 || args[2] != int64(7) {
		t.Errorf("Unexpected args %v", args)
	}
	if wb.Count() != 3 {
		t.Errorf("Expected count 3, got %d", wb.Count())
	}
}

func TestPlaceholders(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, ""},
		{1, "?"},
		{3, "?, ?, ?"},
	}
	for _, tt := range tests {
		if got := Placeholders(tt.n); got != tt.want {
			t.Errorf("Placeholders(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestOrderBy(t *testing.T) {
	columns := map[string]string{
		"title":       "title",
		"releaseYear": "release_year",
		"id":          "id",
	}

	tests := []struct {
		name     string
		property string
		desc     bool
		want     string
		wantErr  bool
	}{
		{"fallback", "", false, "ORDER BY title ASC, id ASC", false},
		{"mapped column", "releaseYear", true, "ORDER BY release_year DESC, id ASC", false},
		{"id only", "id", true, "ORDER BY id DESC", false},
		{"unknown", "budget", false, "", true},
		{"injection attempt", "title; DROP TABLE movies", false, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := OrderBy(columns, tt.property, tt.desc, "title")
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownSortProperty) {
					t.Fatalf("err = %v, want ErrUnknownSortProperty", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("OrderBy() = %q, want %q", got, tt.want)
			}
		})
	}
}
