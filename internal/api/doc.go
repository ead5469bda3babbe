// Cinecatalog - Movie Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecatalog

/*
Package api provides the HTTP surface of the catalog using the Chi router.

Routes:

	POST   /api/{movies,actors,genres}            create, 201
	GET    /api/{movies,actors,genres}            paged listing (?page=&size=&sort=field,dir)
	GET    /api/movies?genre=ID|year=Y|actor=ID   filtered listing, first match wins in that order
	GET    /api/{entity}/{id}                     fetch, 404 when missing
	PATCH  /api/{entity}/{id}                     partial update with association reconciliation
	DELETE /api/{entity}/{id}?force=bool          guarded delete, 204
	GET    /api/movies/search?title=              substring search
	GET    /api/actors/search?name=
	GET    /api/genres/search?name=
	GET    /api/movies/{id}/actors                actors of one movie
	GET    /api/search?query=                     combined search, empty lists instead of 404
	GET    /api/ws                                websocket change feed
	GET    /health                                database health, 503 when DuckDB is unreachable
	GET    /metrics                               Prometheus exposition

Paged responses use one envelope:

	{"content": [...], "totalElements": 12, "totalPages": 2, "elementsOnThisPage": 10}

Errors:

Every failure is answered with a small JSON object. Catalog errors carry their
message verbatim under "ERROR"; validation failures instead list one
"invalid <field>" key per rejected field. Anything outside the catalog error
taxonomy is logged with its cause and answered 500 with a generic message so
driver text never reaches clients.

Middleware:

Global: request ID with logging context, RealIP, Recoverer, CORS.
Under /api: httprate limiting and security headers; every route except the
websocket feed also gets Prometheus request metrics and access logging.
*/
package api
