// Cinecatalog - Movie Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecatalog

// Package query provides SQL query building utilities for the database package.
//
// The WhereBuilder is the primary component, providing a fluent interface for
// constructing WHERE clauses with properly parameterized queries:
//
//	wb := query.NewWhereBuilder()
//	wb.AddContains("name", "bru")
//	wb.AddSubquery("id", "SELECT actor_id FROM movie_actors WHERE movie_id = ?", movieID)
//	whereClause, args := wb.Build()
//
// OrderBy turns an API sort property into an ORDER BY clause. Only columns
// present in the caller's whitelist are accepted, so user input never reaches
// the SQL text:
//
//	orderBy, err := query.OrderBy(map[string]string{"title": "title"}, "title", true, "title")
//	// ORDER BY title DESC, id ASC
//
// All values are bound through "?" placeholders.
package query
