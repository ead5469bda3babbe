// Cinecatalog - Movie Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecatalog

package query

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownSortProperty is returned by OrderBy for a property that is not
// in the column whitelist.
var ErrUnknownSortProperty = errors.New("unknown sort property")

// WhereBuilder constructs SQL WHERE clauses with parameterized arguments.
//
// Example usage:
//
//	wb := query.NewWhereBuilder()
//	wb.AddContains("title", "hard")
//	wb.AddEquals("release_year", 1988)
//	whereClause, args := wb.Build()
//	// contains(lower(title), lower(?)) AND release_year = ?
type WhereBuilder struct {
	clauses []string
	args    []interface{}
}

// NewWhereBuilder creates a new WhereBuilder instance.
func NewWhereBuilder() *WhereBuilder {
	return &WhereBuilder{
		clauses: []string{},
		args:    []interface{}{},
	}
}

// AddClause adds a raw WHERE clause with its arguments.
// This is useful for custom conditions not covered by helper methods.
func (wb *WhereBuilder) AddClause(clause string, args ...interface{}) *WhereBuilder {
	wb.clauses = append(wb.clauses, clause)
	wb.args = append(wb.args, args...)
	return wb
}

// AddEquals adds "column = ?".
func (wb *WhereBuilder) AddEquals(column string, value interface{}) *WhereBuilder {
	return wb.AddClause(column+" = ?", value)
}

// AddContains adds a case-insensitive substring match on column.
// DuckDB's contains() is used instead of LIKE so % and _ in the term match
// literally.
func (wb *WhereBuilder) AddContains(column, term string) *WhereBuilder {
	return wb.AddClause(fmt.Sprintf("contains(lower(%s), lower(?))", column), term)
}

// AddIn adds "column IN (?, ?, ...)". An empty id list matches nothing.
func (wb *WhereBuilder) AddIn(column string, ids []int64) *WhereBuilder {
	if len(ids) == 0 {
		return wb.AddClause("1=0")
	}
	for _, id := range ids {
		wb.args = append(wb.args, id)
	}
	wb.clauses = append(wb.clauses, fmt.Sprintf("%s IN (%s)", column, Placeholders(len(ids))))
	return wb
}

// AddSubquery adds "column IN (subquery)" where subquery carries its own
// placeholders.
func (wb *WhereBuilder) AddSubquery(column, subquery string, args ...interface{}) *WhereBuilder {
	return wb.AddClause(fmt.Sprintf("%s IN (%s)", column, subquery), args...)
}

// Build constructs the final WHERE clause and returns it with arguments.
// Clauses are joined with "AND". Returns ("1=1", []) if no clauses were added.
func (wb *WhereBuilder) Build() (string, []interface{}) {
	if len(wb.clauses) == 0 {
		return "1=1", []interface{}{}
	}
	return strings.Join(wb.clauses, " AND "), wb.args
}

// BuildWithPrefix returns the WHERE clause with "WHERE " prefix.
func (wb *WhereBuilder) BuildWithPrefix() (string, []interface{}) {
	whereClause, args := wb.Build()
	return "WHERE " + whereClause, args
}

// Count returns the number of clauses added to the builder.
func (wb *WhereBuilder) Count() int {
	return len(wb.clauses)
}

// IsEmpty returns true if no clauses have been added.
func (wb *WhereBuilder) IsEmpty() bool {
	return len(wb.clauses) == 0
}

// Placeholders returns n comma-separated "?" markers.
func Placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// OrderBy builds an ORDER BY clause from a whitelisted property.
//
// columns maps API property names to SQL columns. An empty property sorts by
// fallback. The id column is always appended as a tie breaker so paging is
// stable.
func OrderBy(columns map[string]string, property string, descending bool, fallback string) (string, error) {
	column := fallback
	if property != "" {
		c, ok := columns[property]
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrUnknownSortProperty, property)
		}
		column = c
	}

	dir := "ASC"
	if descending {
		dir = "DESC"
	}
	if column == "id" {
		return "ORDER BY id " + dir, nil
	}
	return fmt.Sprintf("ORDER BY %s %s, id ASC", column, dir), nil
}
