// Cinecatalog - Movie Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecatalog

package models

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
)

// Field is a tri-state request field: absent, explicitly null, or a value.
//
// A Field that was never touched by the decoder is absent. The zero value
// is therefore the correct default for omitted keys.
type Field[T any] struct {
	Set   bool // key was present in the payload
	Null  bool // key was present with a JSON null
	Value T
}

// Some returns a Field holding v.
func Some[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: v}
}

// Present reports whether the field carries a non-null value.
func (f Field[T]) Present() bool {
	return f.Set && !f.Null
}

func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		f.Null = true
		return nil
	}
	return json.Unmarshal(data, &f.Value)
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Present() {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// ErrRefMissingID is returned when an association reference has no id.
var ErrRefMissingID = errors.New("association reference requires an id")

// Ref points at an existing entity by id. It decodes from either a bare
// number (7) or an object ({"id": 7}); extra object keys are ignored.
type Ref struct {
	ID int64 `json:"id"`
}

func (r *Ref) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var obj struct {
			ID *int64 `json:"id"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return fmt.Errorf("decode reference: %w", err)
		}
		if obj.ID == nil {
			return ErrRefMissingID
		}
		r.ID = *obj.ID
		return nil
	}
	if err := json.Unmarshal(data, &r.ID); err != nil {
		return fmt.Errorf("decode reference: %w", err)
	}
	return nil
}

// Refs is a list of association references.
type Refs []Ref

// IDs returns the referenced ids in first-seen order with duplicates removed.
func (rs Refs) IDs() []int64 {
	ids := make([]int64, 0, len(rs))
	seen := make(map[int64]struct{}, len(rs))
	for _, r := range rs {
		if _, ok := seen[r.ID]; ok {
			continue
		}
		seen[r.ID] = struct{}{}
		ids = append(ids, r.ID)
	}
	return ids
}

// RefsOf builds references from ids.
func RefsOf(ids ...int64) Refs {
	rs := make(Refs, len(ids))
	for i, id := range ids {
		rs[i] = Ref{ID: id}
	}
	return rs
}

// MoviePatch is the request body for movie create and partial update.
type MoviePatch struct {
	Title       Field[string] `json:"title"`
	ReleaseYear Field[int]    `json:"releaseYear"`
	Duration    Field[int]    `json:"duration"`
	Genres      Field[Refs]   `json:"genres"`
	Actors      Field[Refs]   `json:"actors"`
}

// ActorPatch is the request body for actor create and partial update.
type ActorPatch struct {
	Name      Field[string] `json:"name"`
	BirthDate Field[Date]   `json:"birthDate"`
	Movies    Field[Refs]   `json:"movies"`
}

// GenrePatch is the request body for genre create and partial update.
type GenrePatch struct {
	Name   Field[string] `json:"name"`
	Movies Field[Refs]   `json:"movies"`
}
