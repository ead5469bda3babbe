// Cinecatalog - Movie Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecatalog

/*
Package middleware provides HTTP middleware for request instrumentation.

Key Components:

  - PrometheusMetrics: request count, latency and in-flight gauge, labeled by
    chi route pattern
  - AccessLog: one zerolog line per request; warn when slow, error on 5xx

Both take and return http.HandlerFunc. The API router adapts them to chi with
its chiMiddleware helper:

	r.Route("/api", func(r chi.Router) {
	    r.Use(chiMiddleware(middleware.PrometheusMetrics))
	    r.Use(chiMiddleware(middleware.AccessLog(500 * time.Millisecond)))
	})

Request IDs are assigned earlier in the chain by the API package
(RequestIDWithLogging) so AccessLog lines carry request_id.
*/
package middleware
