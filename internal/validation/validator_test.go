// Cinecatalog - Movie Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecatalog

package validation

import (
	"strings"
	"testing"
	"time"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

type testDraft struct {
	Title    *string    `json:"title" validate:"required,notblank,min=1,max=10"`
	Year     *int       `json:"releaseYear" validate:"required,min=1900,max=2100"`
	Born     *time.Time `json:"birthDate" validate:"omitempty,pastdate"`
	Internal string     `json:"-" validate:"omitempty,max=3"`
}

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 != v2 {
		t.Error("GetValidator() should return the same singleton instance")
	}
	if v1 == nil {
		t.Error("GetValidator() should not return nil")
	}
}

func TestValidateStruct(t *testing.T) {
	past := time.Date(1955, 3, 19, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		input      testDraft
		wantFields map[string]string // field -> tag
	}{
		{
			name:  "valid",
			input: testDraft{Title: strPtr("Heat"), Year: intPtr(1995), Born: &past},
		},
		{
			name:       "missing required",
			input:      testDraft{},
			wantFields: map[string]string{"title": "required", "releaseYear": "required"},
		},
		{
			name:       "blank title",
			input:      testDraft{Title: strPtr("   "), Year: intPtr(1995)},
			wantFields: map[string]string{"title": "notblank"},
		},
		{
			name:       "too long and out of range",
			input:      testDraft{Title: strPtr("abcdefghijk"), Year: intPtr(1899)},
			wantFields: map[string]string{"title": "max", "releaseYear": "min"},
		},
		{
			name:       "go name used when json tag is dash",
			input:      testDraft{Title: strPtr("ok"), Year: intPtr(2000), Internal: "toolong"},
			wantFields: map[string]string{"Internal": "max"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := ValidateStruct(&tt.input)
			if len(tt.wantFields) == 0 {
				if verr != nil {
					t.Fatalf("ValidateStruct() unexpected error: %v", verr)
				}
				return
			}
			if verr == nil {
				t.Fatal("ValidateStruct() expected error")
			}
			got := map[string]string{}
			for _, e := range verr.Errors() {
				got[e.Field()] = e.Tag()
			}
			for field, tag := range tt.wantFields {
				if got[field] != tag {
					t.Errorf("field %q tag = %q, want %q (all: %v)", field, got[field], tag, got)
				}
			}
			if len(got) != len(tt.wantFields) {
				t.Errorf("got %d failing fields, want %d: %v", len(got), len(tt.wantFields), got)
			}
		})
	}
}

func TestPastDate(t *testing.T) {
	orig := now
	now = func() time.Time { return time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC) }
	defer func() { now = orig }()

	tests := []struct {
		name  string
		date  time.Time
		valid bool
	}{
		{"yesterday", time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC), true},
		{"today", time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), false},
		{"tomorrow", time.Date(2024, 6, 16, 0, 0, 0, 0, time.UTC), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := tt.date
			verr := ValidateStruct(&testDraft{Title: strPtr("x"), Year: intPtr(2000), Born: &d})
			if (verr == nil) != tt.valid {
				t.Errorf("valid = %v, want %v (err: %v)", verr == nil, tt.valid, verr)
			}
		})
	}
}

func TestMessagesOverride(t *testing.T) {
	msgs := Messages{
		"title.max":       "Movie title must be between 1 and 10 characters.",
		"releaseYear.min": "Release year must be between 1900 and 2100.",
	}
	verr := ValidateStruct(&testDraft{Title: strPtr("abcdefghijk"), Year: intPtr(1800)}, msgs)
	if verr == nil {
		t.Fatal("expected error")
	}

	fields := verr.FieldMessages()
	if fields["title"] != msgs["title.max"] {
		t.Errorf("title message = %q", fields["title"])
	}
	if fields["releaseYear"] != msgs["releaseYear.min"] {
		t.Errorf("releaseYear message = %q", fields["releaseYear"])
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name  string
		input testDraft
		want  string
	}{
		{"required", testDraft{Year: intPtr(2000)}, "title must not be null"},
		{"notblank", testDraft{Title: strPtr(" "), Year: intPtr(2000)}, "title must not be blank"},
		{"string max", testDraft{Title: strPtr("abcdefghijk"), Year: intPtr(2000)}, "title must be at most 10 characters"},
		{"number min", testDraft{Title: strPtr("x"), Year: intPtr(1)}, "releaseYear must be at least 1900"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := ValidateStruct(&tt.input)
			if verr == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(verr.Error(), tt.want) {
				t.Errorf("Error() = %q, want it to contain %q", verr.Error(), tt.want)
			}
		})
	}
}
