// Cinecatalog - Movie Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecatalog

package models

// SortOrder names a sortable property and its direction.
// Property is the JSON name (title, releaseYear, name, ...); an empty
// Property means the entity's natural order.
type SortOrder struct {
	Property   string
	Descending bool
}

// PageRequest is a zero-based page of a listing.
type PageRequest struct {
	Page int
	Size int
	Sort SortOrder
}

// Offset is the number of rows skipped before this page.
func (r PageRequest) Offset() int {
	return r.Page * r.Size
}

// Page is the uniform envelope for paged listings.
type Page[T any] struct {
	Content            []T   `json:"content"`
	TotalElements      int64 `json:"totalElements"`
	TotalPages         int   `json:"totalPages"`
	ElementsOnThisPage int   `json:"elementsOnThisPage"`
}

// NewPage wraps one page of content with totals computed from total and req.
func NewPage[T any](content []T, total int64, req PageRequest) Page[T] {
	if content == nil {
		content = []T{}
	}
	pages := 0
	if req.Size > 0 {
		pages = int((total + int64(req.Size) - 1) / int64(req.Size))
	}
	return Page[T]{
		Content:            content,
		TotalElements:      total,
		TotalPages:         pages,
		ElementsOnThisPage: len(content),
	}
}

// Empty reports whether the page holds no elements.
func (p Page[T]) Empty() bool {
	return len(p.Content) == 0
}
