// Cinecatalog - Movie Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecatalog

package catalog

import (
	"context"
	"time"
)

// Entity names used in change events and metrics labels.
const (
	EntityMovie = "movie"
	EntityActor = "actor"
	EntityGenre = "genre"
)

// Change actions.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// Change describes one committed mutation.
type Change struct {
	Entity    string    `json:"entity"`
	Action    string    `json:"action"`
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Timestamp time.Time `json:"timestamp"`
}

// Notifier receives committed changes. Notify must not block for long and
// cannot fail the originating request; implementations log their own errors.
type Notifier interface {
	Notify(ctx context.Context, change Change)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, change Change)

func (f NotifierFunc) Notify(ctx context.Context, change Change) {
	f(ctx, change)
}

type multiNotifier []Notifier

func (m multiNotifier) Notify(ctx context.Context, change Change) {
	for _, n := range m {
		n.Notify(ctx, change)
	}
}

// Notifiers fans a change out to every non-nil notifier in order.
func Notifiers(ns ...Notifier) Notifier {
	out := make(multiNotifier, 0, len(ns))
	for _, n := range ns {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}
