// Cinecatalog - Movie Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecatalog

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/cinecatalog/internal/middleware"
)

// slowRequestThreshold is where access logging escalates to warn.
const slowRequestThreshold = 500 * time.Millisecond

// Router wires handlers and middleware into a chi mux.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router. mw may be nil for defaults.
func NewRouter(handler *Handler, mw *ChiMiddleware) *Router {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}
	return &Router{handler: handler, chiMiddleware: mw}
}

// chiMiddleware adapts http.HandlerFunc middleware to Chi's func(http.Handler) http.Handler.
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// SetupChi configures all HTTP routes using Chi router.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(RequestIDWithLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // CORS must be global to handle OPTIONS preflight

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusNotFound, errorBody("Resource not found: "+r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusMethodNotAllowed, errorBody("Method "+r.Method+" not allowed"))
	})

	// ========================
	// Operational Endpoints
	// ========================
	r.Get("/health", router.handler.Health)
	r.Handle("/metrics", promhttp.Handler())

	// ========================
	// Catalog API
	// ========================
	r.Route("/api", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())

		// The change feed is long-lived; request metrics would only
		// record its lifetime.
		r.Get("/ws", router.handler.WebSocket)

		r.Group(func(r chi.Router) {
			r.Use(chiMiddleware(middleware.PrometheusMetrics))
			r.Use(chiMiddleware(middleware.AccessLog(slowRequestThreshold)))

			r.Get("/search", router.handler.Search)

			r.Route("/movies", func(r chi.Router) {
				r.Post("/", router.handler.CreateMovie)
				r.Get("/", router.handler.ListMovies)
				r.Get("/search", router.handler.SearchMovies)
				r.Get("/{id}", router.handler.GetMovie)
				r.Patch("/{id}", router.handler.UpdateMovie)
				r.Delete("/{id}", router.handler.DeleteMovie)
				r.Get("/{id}/actors", router.handler.MovieActors)
			})

			r.Route("/actors", func(r chi.Router) {
				r.Post("/", router.handler.CreateActor)
				r.Get("/", router.handler.ListActors)
				r.Get("/search", router.handler.SearchActors)
				r.Get("/{id}", router.handler.GetActor)
				r.Patch("/{id}", router.handler.UpdateActor)
				r.Delete("/{id}", router.handler.DeleteActor)
			})

			r.Route("/genres", func(r chi.Router) {
				r.Post("/", router.handler.CreateGenre)
				r.Get("/", router.handler.ListGenres)
				r.Get("/search", router.handler.SearchGenres)
				r.Get("/{id}", router.handler.GetGenre)
				r.Patch("/{id}", router.handler.UpdateGenre)
				r.Delete("/{id}", router.handler.DeleteGenre)
			})
		})
	})

	return r
}
