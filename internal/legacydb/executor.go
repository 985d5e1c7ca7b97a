// Package legacydb is the narrow seam between the resolvers and whichever
// legacy schema happens to answer. It exposes a single query capability with
// positional, untyped columns plus the coercion rules that turn those raw
// values into something the cascades can compare.
package legacydb

import (
	"context"
	"database/sql"
	"fmt"
)

//go:generate mockgen -source=executor.go -destination=mocks/mocks.go -package=mocks Executor

// Row is one positional result row. Columns keep whatever dynamic type the
// driver produced (numeric, text, nil); callers narrow them with CoerceInt
// and friends so one failure policy governs every cascade.
type Row []any

// Get returns the value at the given column index, or nil when the row is
// narrower than the caller expected. Legacy schemas disagree on column counts
// often enough that an out-of-range read must not be an error.
func (r Row) Get(i int) any {
	if i < 0 || i >= len(r) {
		return nil
	}
	return r[i]
}

// Executor is the one capability the resolvers consume from their
// environment. Implementations must treat each call as an independent,
// idempotent read; the resolvers convert any returned error into "no rows".
type Executor interface {
	Query(ctx context.Context, query string, args ...any) ([]Row, error)
}

// SQLExecutor implements Executor on a database/sql connection.
type SQLExecutor struct {
	db *sql.DB
}

// NewSQLExecutor wraps an open connection. The pool's lifecycle belongs to the
// caller; this type never closes it.
func NewSQLExecutor(db *sql.DB) *SQLExecutor {
	return &SQLExecutor{db: db}
}

// Query runs the statement and materializes every row with untyped columns.
func (e *SQLExecutor) Query(ctx context.Context, query string, args ...any) ([]Row, error) {
	rows, err := e.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("legacy query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("legacy query columns: %w", err)
	}

	var out []Row
	for rows.Next() {
		values := make(Row, len(cols))
		scan := make([]any, len(cols))
		for i := range values {
			scan[i] = &values[i]
		}
		if err := rows.Scan(scan...); err != nil {
			return nil, fmt.Errorf("legacy query scan: %w", err)
		}
		for i, v := range values {
			// Drivers hand text back as []byte; normalize so coercion
			// sees a string either way.
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		out = append(out, values)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("legacy query rows: %w", err)
	}
	return out, nil
}
