// Cinecatalog - Movie Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecatalog

package catalog

import "sort"

// Plan is the set of peer ids to unlink and link so that a persisted peer
// set becomes the requested one.
type Plan struct {
	ToRemove []int64
	ToAdd    []int64
}

// Empty reports whether applying the plan changes nothing.
func (p Plan) Empty() bool {
	return len(p.ToRemove) == 0 && len(p.ToAdd) == 0
}

// Reconcile computes current minus desired (ToRemove) and desired minus
// current (ToAdd). Duplicates collapse and both outputs are ascending.
func Reconcile(current, desired []int64) Plan {
	have := toSet(current)
	want := toSet(desired)

	plan := Plan{ToRemove: []int64{}, ToAdd: []int64{}}
	for id := range have {
		if _, ok := want[id]; !ok {
			plan.ToRemove = append(plan.ToRemove, id)
		}
	}
	for id := range want {
		if _, ok := have[id]; !ok {
			plan.ToAdd = append(plan.ToAdd, id)
		}
	}

	sort.Slice(plan.ToRemove, func(i, j int) bool { return plan.ToRemove[i] < plan.ToRemove[j] })
	sort.Slice(plan.ToAdd, func(i, j int) bool { return plan.ToAdd[i] < plan.ToAdd[j] })
	return plan
}

func toSet(ids []int64) map[int64]struct{} {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
