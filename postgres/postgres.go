// Package postgres provides a PostgreSQL graph store for castgraph.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/fwojciec/castgraph"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SQLSTATE codes mapped onto castgraph error codes.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// DB wraps a PostgreSQL connection pool.
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool and creates the schema if needed.
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool.
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

const schema = `
CREATE TABLE IF NOT EXISTS vertices (
	id    TEXT PRIMARY KEY,
	label TEXT NOT NULL,
	kind  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS edges (
	src      TEXT NOT NULL REFERENCES vertices(id) ON DELETE CASCADE,
	dst      TEXT NOT NULL REFERENCES vertices(id) ON DELETE CASCADE,
	relation TEXT NOT NULL,
	PRIMARY KEY (src, dst, relation)
);

CREATE INDEX IF NOT EXISTS idx_vertices_kind ON vertices(kind);
CREATE INDEX IF NOT EXISTS idx_edges_dst ON edges(dst);
`

// translateError maps PostgreSQL errors onto castgraph error codes.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return castgraph.Errorf(castgraph.ECONFLICT, "%s", pgErr.Message)
		case foreignKeyViolation:
			return castgraph.Errorf(castgraph.ENOTFOUND, "%s", pgErr.Message)
		}
	}
	if pgconn.SafeToRetry(err) {
		return castgraph.Errorf(castgraph.EUNAVAILABLE, "postgres: %v", err)
	}
	return err
}
