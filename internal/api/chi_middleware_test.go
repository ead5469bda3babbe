// Cinecatalog - Movie Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecatalog

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/cinecatalog/internal/config"
	"github.com/tomtom215/cinecatalog/internal/logging"
	"github.com/tomtom215/cinecatalog/internal/metrics"
)

func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestCORSPreflight(t *testing.T) {
	mw := NewChiMiddlewareFromConfig(&config.SecurityConfig{CORSOrigins: []string{testOrigin}, RateLimitDisabled: true})
	handler := mw.CORS()(http.HandlerFunc(okHandler))

	tests := []struct {
		origin    string
		wantAllow string
	}{
		{testOrigin, testOrigin},
		{"http://evil.example", ""},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodOptions, "/api/movies", nil)
		req.Header.Set("Origin", tt.origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantAllow {
			t.Errorf("origin %s: Allow-Origin = %q, want %q", tt.origin, got, tt.wantAllow)
		}
	}
}

func TestRateLimitDisabledIsNoop(t *testing.T) {
	mc := DefaultChiMiddlewareConfig()
	mc.RateLimitDisabled = true
	mc.RateLimitRequests = 1
	handler := NewChiMiddleware(mc).RateLimit()(http.HandlerFunc(okHandler))

	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/genres", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d", i, rec.Code)
		}
	}
}

func TestRateLimitRecordsHits(t *testing.T) {
	mc := DefaultChiMiddlewareConfig()
	mc.RateLimitRequests = 1
	mc.RateLimitWindow = time.Minute
	handler := NewChiMiddleware(mc).RateLimit()(http.HandlerFunc(okHandler))

	before := testutil.ToFloat64(metrics.APIRateLimitHits.WithLabelValues("/limited"))
	for i := 0; i < 3; i++ {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/limited", nil))
	}
	if got := testutil.ToFloat64(metrics.APIRateLimitHits.WithLabelValues("/limited")); got != before+2 {
		t.Errorf("rate limit hits = %v, want %v", got, before+2)
	}
}

func TestRequestIDWithLogging(t *testing.T) {
	var seen string
	handler := RequestIDWithLogging()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = logging.RequestIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if seen == "" {
		t.Fatal("request id missing from context")
	}
	if rec.Header().Get("X-Request-ID") != seen {
		t.Errorf("header %q != context %q", rec.Header().Get("X-Request-ID"), seen)
	}
}

func TestAPISecurityHeaders(t *testing.T) {
	handler := APISecurityHeaders()(http.HandlerFunc(okHandler))

	req := httptest.NewRequest(http.MethodGet, "/api/movies", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	for header, want := range map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"Referrer-Policy":        "strict-origin-when-cross-origin",
	} {
		if got := rec.Header().Get(header); got != want {
			t.Errorf("%s = %q, want %q", header, got, want)
		}
	}
	if rec.Header().Get("Strict-Transport-Security") == "" {
		t.Error("HSTS missing behind TLS proxy")
	}
}
