// Cinecatalog - Movie Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecatalog

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/cinecatalog/internal/catalog"
	"github.com/tomtom215/cinecatalog/internal/logging"
	"github.com/tomtom215/cinecatalog/internal/models"
)

// maxBodyBytes caps request bodies. Catalog entities are small.
const maxBodyBytes = 1 << 20

// databaseErrorMessage is the only text a client sees for an unexpected failure.
const databaseErrorMessage = "A database error occurred."

// sanitizeLogValue removes control characters from strings to prevent log injection attacks.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			result.WriteString(fmt.Sprintf("\\x%02x", r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// respondJSON sends a JSON response with proper headers
func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	data, err := json.Marshal(body)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

func errorBody(message string) map[string]string {
	return map[string]string{"ERROR": message}
}

// respondError maps err onto a status code and the catalog error body.
//
//	NotFound                                     -> 404 {"ERROR": msg}
//	Validation                                   -> 400 {"invalid <field>": msg, ...}
//	InvalidOperation, Conflict, MalformedInput   -> 400 {"ERROR": msg}
//	anything else                                -> 500 {"ERROR": "A database error occurred."}
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	var ce *catalog.Error
	if !errors.As(err, &ce) {
		logging.CtxErr(r.Context(), err).
			Str("method", r.Method).
			Str("path", sanitizeLogValue(r.URL.Path)).
			Msg("Unhandled error")
		respondJSON(w, http.StatusInternalServerError, errorBody(databaseErrorMessage))
		return
	}

	logging.Ctx(r.Context()).Debug().
		Str("kind", ce.Kind.String()).
		Str("message", sanitizeLogValue(ce.Message)).
		Msg("Request rejected")

	switch ce.Kind {
	case catalog.KindNotFound:
		respondJSON(w, http.StatusNotFound, errorBody(ce.Message))
	case catalog.KindValidation:
		body := make(map[string]string, len(ce.Fields))
		for field, msg := range ce.Fields {
			body["invalid "+field] = msg
		}
		respondJSON(w, http.StatusBadRequest, body)
	default:
		respondJSON(w, http.StatusBadRequest, errorBody(ce.Message))
	}
}

// decodeJSON reads a request body into dst. Unknown keys are ignored.
func decodeJSON(r *http.Request, dst interface{}) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return catalog.MalformedInput(err, "Malformed JSON request body")
	}
	if len(body) > maxBodyBytes {
		return catalog.MalformedInput(nil, "Request body too large")
	}
	if err := json.Unmarshal(body, dst); err != nil {
		var dateErr *models.DateFormatError
		if errors.As(err, &dateErr) {
			return catalog.MalformedInput(err, "Invalid date of birth format. Please use yyyy-MM-dd")
		}
		return catalog.MalformedInput(err, "Malformed JSON request body")
	}
	return nil
}

// pathID parses the {id} URL parameter.
func pathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, catalog.InvalidParameter("id", raw, err)
	}
	return id, nil
}

// queryInt64 parses an optional integer query parameter. ok is false when
// the parameter is absent.
func queryInt64(r *http.Request, name string) (value int64, ok bool, err error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, false, nil
	}
	value, err = strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, false, catalog.InvalidParameter(name, raw, err)
	}
	return value, true, nil
}

// queryBool parses an optional boolean query parameter.
func queryBool(r *http.Request, name string, defaultValue bool) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, catalog.InvalidParameter(name, raw, err)
	}
	return value, nil
}

// pageRequest reads page, size and sort. Bounds are checked by the service.
//
// sort follows the Spring convention: sort=<property>[,asc|desc].
func (h *Handler) pageRequest(r *http.Request) (models.PageRequest, error) {
	req := models.PageRequest{Page: 0, Size: h.defaultPageSize}

	page, ok, err := queryInt64(r, "page")
	if err != nil {
		return req, err
	}
	if ok {
		req.Page = int(page)
	}

	size, ok, err := queryInt64(r, "size")
	if err != nil {
		return req, err
	}
	if ok {
		req.Size = int(size)
	}

	if raw := r.URL.Query().Get("sort"); raw != "" {
		sort, err := parseSort(raw)
		if err != nil {
			return req, err
		}
		req.Sort = sort
	}
	return req, nil
}

func parseSort(raw string) (models.SortOrder, error) {
	parts := strings.Split(raw, ",")
	order := models.SortOrder{Property: strings.TrimSpace(parts[0])}
	if len(parts) > 2 {
		return order, catalog.InvalidParameter("sort", raw, nil)
	}
	if len(parts) == 2 {
		switch strings.ToLower(strings.TrimSpace(parts[1])) {
		case "asc":
		case "desc":
			order.Descending = true
		default:
			return order, catalog.InvalidParameter("sort", raw, nil)
		}
	}
	return order, nil
}

// routePattern returns the matched chi pattern, or the raw path outside chi.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return r.URL.Path
}
