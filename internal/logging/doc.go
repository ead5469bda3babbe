// Cinecatalog - Movie Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecatalog

// Package logging provides centralized zerolog-based logging for Cinecatalog.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json", Timestamp: true})
//
//	logging.Info().Msg("Server starting")
//	logging.Error().Err(err).Msg("Operation failed")
//
//	// Request-scoped (request_id / correlation_id from the HTTP middleware)
//	logging.Ctx(ctx).Info().Int64("movie_id", id).Msg("Movie updated")
//
// # Configuration
//
// Environment Variables (via package config):
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: include caller info (default: false)
//
// # slog Bridge
//
// SlogHandler routes log/slog records into zerolog. The supervisor tree uses
// it through sutureslog so restarts and panics appear in the same stream.
//
// # Best Practices
//
// Always terminate log chains with .Msg() or .Send():
//
//	logging.Info().Str("key", "value").Msg("message")  // Correct
//	logging.Info().Str("key", "value")                 // WRONG - log not emitted
package logging
