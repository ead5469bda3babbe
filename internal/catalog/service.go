// Cinecatalog - Movie Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecatalog

package catalog

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/tomtom215/cinecatalog/internal/database"
	"github.com/tomtom215/cinecatalog/internal/logging"
	"github.com/tomtom215/cinecatalog/internal/metrics"
	"github.com/tomtom215/cinecatalog/internal/models"
	"github.com/tomtom215/cinecatalog/internal/validation"
)

// Service orchestrates catalog reads and transactional writes.
type Service struct {
	db          *database.DB
	notifier    Notifier
	maxPageSize int
}

// NewService creates a catalog service. notifier may be nil.
func NewService(db *database.DB, notifier Notifier, maxPageSize int) *Service {
	if notifier == nil {
		notifier = Notifiers()
	}
	return &Service{db: db, notifier: notifier, maxPageSize: maxPageSize}
}

// MaxPageSize is the largest accepted page size.
func (s *Service) MaxPageSize() int {
	return s.maxPageSize
}

// CheckPage validates paging bounds, including an offset that fits in an int.
func (s *Service) CheckPage(req models.PageRequest) error {
	switch {
	case req.Page < 0:
		return InvalidOperation("Page number must be 0 or higher")
	case req.Size > s.maxPageSize:
		return InvalidOperation("Page size must be %d or less", s.maxPageSize)
	case req.Size < 1:
		return InvalidOperation("Page size must be 1 or higher")
	case req.Page > math.MaxInt/req.Size:
		return InvalidOperation("Page number must be %d or less", math.MaxInt/req.Size)
	}
	return nil
}

// listError maps storage errors from a paged query.
func listError(err error, req models.PageRequest) error {
	if errors.Is(err, database.ErrUnknownSortProperty) {
		return InvalidOperation("Invalid sort property: %s", req.Sort.Property)
	}
	return err
}

// committed records metrics and emits a change once a transaction is durable.
func (s *Service) committed(ctx context.Context, entity, action string, id int64, name string, tally assocTally) {
	metrics.RecordMutation(entity, action)
	tally.record()

	logging.Mutation(ctx, entity, action, id).Str("name", name).Msg("Catalog mutation committed")

	s.notifier.Notify(ctx, Change{
		Entity:    entity,
		Action:    action,
		ID:        id,
		Name:      name,
		Timestamp: time.Now().UTC(),
	})
}

// validate runs struct validation with entity-specific messages.
func validate(draft interface{}, msgs validation.Messages) error {
	if ve := validation.ValidateStruct(draft, msgs); ve != nil {
		return fromValidation(ve)
	}
	return nil
}

// trimmed returns a pointer to the trimmed string value of f, or fallback
// when f carries no value.
func trimmed(f models.Field[string], fallback *string) *string {
	if !f.Present() {
		return fallback
	}
	v := strings.TrimSpace(f.Value)
	return &v
}

func intOr(f models.Field[int], fallback *int) *int {
	if !f.Present() {
		return fallback
	}
	v := f.Value
	return &v
}

// assocTally counts links and unlinks per join table until commit.
type assocTally map[string][2]int

func (t assocTally) add(relation string, linked, unlinked int) {
	c := t[relation]
	c[0] += linked
	c[1] += unlinked
	t[relation] = c
}

func (t assocTally) record() {
	for relation, c := range t {
		metrics.RecordAssociationChanges(relation, c[0], c[1])
	}
}

// relation describes one side of a join table: the owner whose peer set is
// being replaced and the peer type being referenced.
type relation struct {
	table   string // join table, used as the metrics label
	peer    string // peer type name used in NotFound messages
	exists  func(q *database.Queries, ctx context.Context, id int64) (bool, error)
	current func(q *database.Queries, ctx context.Context, ownerID int64) ([]int64, error)
	link    func(q *database.Queries, ctx context.Context, ownerID, peerID int64) error
	unlink  func(q *database.Queries, ctx context.Context, ownerID, peerID int64) error
	clear   func(q *database.Queries, ctx context.Context, ownerID int64) (int64, error)
}

var (
	movieGenres = relation{
		table:   "movie_genres",
		peer:    "Genre",
		exists:  (*database.Queries).GenreExists,
		current: (*database.Queries).MovieGenreIDs,
		link:    (*database.Queries).LinkMovieGenre,
		unlink:  (*database.Queries).UnlinkMovieGenre,
		clear:   (*database.Queries).ClearMovieGenres,
	}

	movieActors = relation{
		table:   "movie_actors",
		peer:    "Actor",
		exists:  (*database.Queries).ActorExists,
		current: (*database.Queries).MovieActorIDs,
		link:    (*database.Queries).LinkMovieActor,
		unlink:  (*database.Queries).UnlinkMovieActor,
		clear:   (*database.Queries).ClearMovieActors,
	}

	genreMovies = relation{
		table:   "movie_genres",
		peer:    "Movie",
		exists:  (*database.Queries).MovieExists,
		current: (*database.Queries).GenreMovieIDs,
		link: func(q *database.Queries, ctx context.Context, genreID, movieID int64) error {
			return q.LinkMovieGenre(ctx, movieID, genreID)
		},
		unlink: func(q *database.Queries, ctx context.Context, genreID, movieID int64) error {
			return q.UnlinkMovieGenre(ctx, movieID, genreID)
		},
		clear: (*database.Queries).ClearGenreMovies,
	}

	actorMovies = relation{
		table:   "movie_actors",
		peer:    "Movie",
		exists:  (*database.Queries).MovieExists,
		current: (*database.Queries).ActorMovieIDs,
		link: func(q *database.Queries, ctx context.Context, actorID, movieID int64) error {
			return q.LinkMovieActor(ctx, movieID, actorID)
		},
		unlink: func(q *database.Queries, ctx context.Context, actorID, movieID int64) error {
			return q.UnlinkMovieActor(ctx, movieID, actorID)
		},
		clear: (*database.Queries).ClearActorMovies,
	}
)

// resolve checks that every referenced peer exists, in request order.
func (r relation) resolve(ctx context.Context, q *database.Queries, field models.Field[models.Refs]) ([]int64, error) {
	if !field.Present() {
		return nil, nil
	}
	ids := field.Value.IDs()
	for _, id := range ids {
		ok, err := r.exists(q, ctx, id)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, NotFound("%s not found with id: %d", r.peer, id)
		}
	}
	return ids, nil
}

// apply replaces the owner's peer set according to the tri-state field.
// Absent or null leaves the set untouched; an empty list clears it; anything
// else is reconciled against the persisted set. ids must come from resolve.
func (r relation) apply(ctx context.Context, q *database.Queries, ownerID int64, field models.Field[models.Refs], ids []int64, tally assocTally) error {
	if !field.Present() {
		return nil
	}

	if len(ids) == 0 {
		n, err := r.clear(q, ctx, ownerID)
		if err != nil {
			return err
		}
		tally.add(r.table, 0, int(n))
		return nil
	}

	current, err := r.current(q, ctx, ownerID)
	if err != nil {
		return err
	}

	plan := Reconcile(current, ids)
	for _, id := range plan.ToRemove {
		if err := r.unlink(q, ctx, ownerID, id); err != nil {
			return err
		}
	}
	for _, id := range plan.ToAdd {
		if err := r.link(q, ctx, ownerID, id); err != nil {
			return err
		}
	}
	tally.add(r.table, len(plan.ToAdd), len(plan.ToRemove))
	return nil
}

// rejectDelete counts a refused guarded delete and builds its error.
func rejectDelete(entity, format string, args ...interface{}) error {
	metrics.RecordDeleteRejected(entity)
	return InvalidOperation(format, args...)
}
