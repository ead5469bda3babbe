// Cinecatalog - Movie Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecatalog

package catalog

import (
	"reflect"
	"testing"
)

func TestReconcile(t *testing.T) {
	tests := []struct {
		name       string
		current    []int64
		desired    []int64
		wantRemove []int64
		wantAdd    []int64
	}{
		{"both empty", nil, nil, []int64{}, []int64{}},
		{"add to empty", nil, []int64{3, 1}, []int64{}, []int64{1, 3}},
		{"remove all", []int64{2, 1}, nil, []int64{1, 2}, []int64{}},
		{"unchanged", []int64{1, 2}, []int64{2, 1}, []int64{}, []int64{}},
		{"swap one", []int64{1, 2}, []int64{2, 3}, []int64{1}, []int64{3}},
		{"duplicates collapse", []int64{1}, []int64{4, 4, 1, 4}, []int64{}, []int64{4}},
		{"disjoint", []int64{5, 6}, []int64{7}, []int64{5, 6}, []int64{7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := Reconcile(tt.current, tt.desired)
			if !reflect.DeepEqual(plan.ToRemove, tt.wantRemove) {
				t.Errorf("ToRemove = %v, want %v", plan.ToRemove, tt.wantRemove)
			}
			if !reflect.DeepEqual(plan.ToAdd, tt.wantAdd) {
				t.Errorf("ToAdd = %v, want %v", plan.ToAdd, tt.wantAdd)
			}
			if plan.Empty() != (len(tt.wantRemove) == 0 && len(tt.wantAdd) == 0) {
				t.Errorf("Empty() = %v", plan.Empty())
			}
		})
	}
}

// Applying a plan to current must always yield exactly the desired set.
func TestReconcileConverges(t *testing.T) {
	cases := [][2][]int64{
		{{1, 2, 3}, {3, 4, 5}},
		{{}, {9}},
		{{9}, {}},
		{{1, 1, 2}, {2, 2}},
	}

	for _, c := range cases {
		current, desired := c[0], c[1]
		plan := Reconcile(current, desired)

		result := toSet(current)
		for _, id := range plan.ToRemove {
			delete(result, id)
		}
		for _, id := range plan.ToAdd {
			result[id] = struct{}{}
		}

		if !reflect.DeepEqual(result, toSet(desired)) {
			t.Errorf("Reconcile(%v, %v) applied = %v, want %v", current, desired, result, toSet(desired))
		}
	}
}
