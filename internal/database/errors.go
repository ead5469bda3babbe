// Cinecatalog - Movie Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecatalog

package database

import (
	"errors"
	"io"
	"strings"

	"github.com/tomtom215/cinecatalog/internal/database/query"
	"github.com/tomtom215/cinecatalog/internal/logging"
)

// Sentinel errors for catalog rows.
var (
	ErrMovieNotFound = errors.New("movie not found")
	ErrActorNotFound = errors.New("actor not found")
	ErrGenreNotFound = errors.New("genre not found")

	ErrDuplicateTitle     = errors.New("movie title already exists")
	ErrDuplicateActorName = errors.New("actor name already exists")
	ErrDuplicateGenreName = errors.New("genre name already exists")

	// ErrUnknownSortProperty is returned by paged listings for a sort
	// property outside the entity's whitelist.
	ErrUnknownSortProperty = query.ErrUnknownSortProperty
)

// closeWithLog closes a resource and logs any error
func closeWithLog(closer io.Closer, resourceType string) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.Warn().Str("type", resourceType).Err(err).Msg("Failed to close resource")
	}
}

// closeQuietly closes a resource and explicitly ignores any error
// Use this for cleanup operations in error paths where Close() errors are not actionable
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close() // Explicitly ignore error - cleanup is best-effort
	}
}

// isUniqueConstraintError checks if an error is a unique constraint violation
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	// DuckDB unique constraint error messages contain "UNIQUE constraint" or "Duplicate key"
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "unique constraint") || strings.Contains(errMsg, "duplicate key")
}

// isTransactionConflict checks if an error is a DuckDB transaction conflict
func isTransactionConflict(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "Transaction conflict") ||
		strings.Contains(errStr, "Conflict on update") ||
		strings.Contains(errStr, "cannot update a table that has been altered")
}

// mapUniqueError replaces a unique violation with the table's sentinel.
func mapUniqueError(err error, duplicate error) error {
	if isUniqueConstraintError(err) {
		return duplicate
	}
	return err
}
