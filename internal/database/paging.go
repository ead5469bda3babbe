// Cinecatalog - Movie Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecatalog

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tomtom215/cinecatalog/internal/database/query"
	"github.com/tomtom215/cinecatalog/internal/models"
)

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

// pageSpec describes one paged SELECT over a single entity table.
type pageSpec[T any] struct {
	table    string
	columns  string
	sortable map[string]string
	fallback string
	scan     func(scanner) (T, error)
}

// fetchPage runs COUNT(*) and the LIMIT/OFFSET query for one page.
// Peers are attached by the caller.
func fetchPage[T any](ctx context.Context, q *Queries, spec pageSpec[T], wb *query.WhereBuilder, req models.PageRequest) ([]T, int64, error) {
	orderBy, err := query.OrderBy(spec.sortable, req.Sort.Property, req.Sort.Descending, spec.fallback)
	if err != nil {
		return nil, 0, err
	}
	where, args := wb.BuildWithPrefix()

	start := time.Now()
	var total int64
	err = q.q.QueryRowContext(ctx,
		fmt.Sprintf("SELECT COUNT(*) FROM %s %s", spec.table, where), args...).Scan(&total)
	observe("count", spec.table, start, err)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count %s: %w", spec.table, err)
	}
	if total == 0 || int64(req.Offset()) >= total {
		return nil, total, nil
	}

	pageArgs := make([]interface{}, 0, len(args)+2)
	pageArgs = append(pageArgs, args...)
	pageArgs = append(pageArgs, req.Size, req.Offset())

	start = time.Now()
	rows, err := q.q.QueryContext(ctx,
		fmt.Sprintf("SELECT %s FROM %s %s %s LIMIT ? OFFSET ?", spec.columns, spec.table, where, orderBy),
		pageArgs...)
	observe("select", spec.table, start, err)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list %s: %w", spec.table, err)
	}
	defer closeWithLog(rows, "rows")

	items := make([]T, 0, req.Size)
	for rows.Next() {
		item, err := spec.scan(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan %s row: %w", spec.table, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate %s rows: %w", spec.table, err)
	}
	return items, total, nil
}

// queryIDs runs a single-column id query.
func (q *Queries) queryIDs(ctx context.Context, table, stmt string, args ...interface{}) ([]int64, error) {
	start := time.Now()
	rows, err := q.q.QueryContext(ctx, stmt, args...)
	observe("select", table, start, err)
	if err != nil {
		return nil, err
	}
	defer closeWithLog(rows, "rows")

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// exists reports whether a row with id is present in table.
func (q *Queries) exists(ctx context.Context, table string, id int64) (bool, error) {
	start := time.Now()
	var one int
	err := q.q.QueryRowContext(ctx,
		fmt.Sprintf("SELECT 1 FROM %s WHERE id = ?", table), id).Scan(&one)
	if err == sql.ErrNoRows {
		observe("select", table, start, nil)
		return false, nil
	}
	observe("select", table, start, err)
	if err != nil {
		return false, fmt.Errorf("failed to check %s existence: %w", table, err)
	}
	return true, nil
}

// deleteByID removes one entity row and reports notFound if nothing matched.
func (q *Queries) deleteByID(ctx context.Context, table string, id int64, notFound error) error {
	start := time.Now()
	res, err := q.q.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = ?", table), id)
	observe("delete", table, start, err)
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
