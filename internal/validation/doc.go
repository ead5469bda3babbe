// Cinecatalog - Movie Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecatalog

// Package validation provides struct validation using go-playground/validator v10.
//
// The package wraps a thread-safe singleton validator with two custom rules and
// a message layer that lets callers supply their own per-field wording.
//
// # Custom Tags
//
//   - notblank: string must contain something other than whitespace
//   - pastdate: time.Time calendar date must be strictly before today (UTC)
//
// # Field Names
//
// Errors report JSON field names (releaseYear, birthDate) rather than Go names,
// so FieldMessages can be returned to clients as-is.
//
// # Messages
//
// Generated messages follow a small template table. Callers override them per
// field and tag:
//
//	msgs := validation.Messages{
//	    "title.max": "Movie title must be between 1 and 100 characters.",
//	}
//	if verr := validation.ValidateStruct(&draft, msgs); verr != nil {
//	    return verr.FieldMessages()
//	}
//
// Pointer fields combine naturally with required: a nil pointer fails
// "required", a non-nil pointer is dereferenced for min, max and friends.
package validation
