package postgres

import (
	"context"

	"github.com/fwojciec/castgraph"
)

// Compile-time interface verification.
var _ castgraph.GraphStore = (*GraphStore)(nil)

// GraphStore implements castgraph.GraphStore using PostgreSQL.
type GraphStore struct {
	db *DB
}

// NewGraphStore creates a new GraphStore.
func NewGraphStore(db *DB) *GraphStore {
	return &GraphStore{db: db}
}

// CreateVertex creates a vertex, returning ECONFLICT if its ID is taken.
func (s *GraphStore) CreateVertex(ctx context.Context, v *castgraph.Vertex) error {
	if err := v.Validate(); err != nil {
		return err
	}

	tag, err := s.db.pool.Exec(ctx,
		`INSERT INTO vertices (id, label, kind)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (id) DO NOTHING`,
		v.ID, v.Label, v.Kind,
	)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return castgraph.Errorf(castgraph.ECONFLICT, "vertex %q already exists", v.ID)
	}
	return nil
}

// CreateEdge creates an edge between two existing vertices.
func (s *GraphStore) CreateEdge(ctx context.Context, e *castgraph.Edge) error {
	if err := e.Validate(); err != nil {
		return err
	}

	tag, err := s.db.pool.Exec(ctx,
		`INSERT INTO edges (src, dst, relation)
		 SELECT $1, $2, $3
		 WHERE EXISTS (SELECT 1 FROM vertices WHERE id = $1)
		   AND EXISTS (SELECT 1 FROM vertices WHERE id = $2)
		 ON CONFLICT DO NOTHING`,
		e.From, e.To, e.Relation,
	)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var endpoints bool
	err = s.db.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM vertices WHERE id = $1)
		    AND EXISTS (SELECT 1 FROM vertices WHERE id = $2)`,
		e.From, e.To,
	).Scan(&endpoints)
	if err != nil {
		return translateError(err)
	}
	if !endpoints {
		return castgraph.Errorf(castgraph.ENOTFOUND, "edge %q -> %q: vertex not found", e.From, e.To)
	}
	return castgraph.Errorf(castgraph.ECONFLICT, "edge %q -> %q already exists", e.From, e.To)
}

// DropAll removes every vertex and edge.
func (s *GraphStore) DropAll(ctx context.Context) error {
	_, err := s.db.pool.Exec(ctx, `TRUNCATE edges, vertices`)
	return translateError(err)
}

// Stats counts vertices by kind and edges.
func (s *GraphStore) Stats(ctx context.Context) (*castgraph.Stats, error) {
	var stats castgraph.Stats
	err := s.db.pool.QueryRow(ctx,
		`SELECT
			(SELECT COUNT(*) FROM vertices WHERE kind = $1),
			(SELECT COUNT(*) FROM vertices WHERE kind = $2),
			(SELECT COUNT(*) FROM edges)`,
		castgraph.KindActor, castgraph.KindAppearance,
	).Scan(&stats.Actors, &stats.Appearances, &stats.Edges)
	if err != nil {
		return nil, translateError(err)
	}
	return &stats, nil
}
