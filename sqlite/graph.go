package sqlite

import (
	"context"
	"database/sql"

	"github.com/fwojciec/castgraph"
)

// Compile-time interface verification.
var _ castgraph.GraphStore = (*GraphStore)(nil)

// GraphStore implements castgraph.GraphStore using SQLite.
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

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO vertices (id, label, kind)
		VALUES (?, ?, ?)
		ON CONFLICT (id) DO NOTHING
	`, v.ID, v.Label, v.Kind)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return castgraph.Errorf(castgraph.ECONFLICT, "vertex %q already exists", v.ID)
	}
	return nil
}

// CreateEdge creates an edge between two existing vertices.
func (s *GraphStore) CreateEdge(ctx context.Context, e *castgraph.Edge) error {
	if err := e.Validate(); err != nil {
		return err
	}

	// The WHERE clause is required for the upsert to parse after a SELECT.
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO edges (src, dst, relation)
		SELECT ?, ?, ?
		WHERE EXISTS (SELECT 1 FROM vertices WHERE id = ?)
		  AND EXISTS (SELECT 1 FROM vertices WHERE id = ?)
		ON CONFLICT DO NOTHING
	`, e.From, e.To, e.Relation, e.From, e.To)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows > 0 {
		return nil
	}

	var endpoints bool
	err = s.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM vertices WHERE id = ?)
		   AND EXISTS (SELECT 1 FROM vertices WHERE id = ?)
	`, e.From, e.To).Scan(&endpoints)
	if err != nil {
		return err
	}
	if !endpoints {
		return castgraph.Errorf(castgraph.ENOTFOUND, "edge %q -> %q: vertex not found", e.From, e.To)
	}
	return castgraph.Errorf(castgraph.ECONFLICT, "edge %q -> %q already exists", e.From, e.To)
}

// DropAll removes every vertex and edge.
func (s *GraphStore) DropAll(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM edges"); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, "DELETE FROM vertices")
	return err
}

// Stats counts vertices by kind and edges.
func (s *GraphStore) Stats(ctx context.Context) (*castgraph.Stats, error) {
	var stats castgraph.Stats
	err := s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM vertices WHERE kind = ?),
			(SELECT COUNT(*) FROM vertices WHERE kind = ?),
			(SELECT COUNT(*) FROM edges)
	`, castgraph.KindActor, castgraph.KindAppearance).Scan(&stats.Actors, &stats.Appearances, &stats.Edges)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// FindVertexByID retrieves a vertex by ID.
// Returns ENOTFOUND if the vertex does not exist.
func (s *GraphStore) FindVertexByID(ctx context.Context, id string) (*castgraph.Vertex, error) {
	var v castgraph.Vertex
	err := s.db.QueryRowContext(ctx, `
		SELECT id, label, kind FROM vertices WHERE id = ?
	`, id).Scan(&v.ID, &v.Label, &v.Kind)
	if err == sql.ErrNoRows {
		return nil, castgraph.Errorf(castgraph.ENOTFOUND, "vertex not found")
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// FindEdgesFrom returns the edges leaving a vertex ordered by destination.
func (s *GraphStore) FindEdgesFrom(ctx context.Context, from string) ([]*castgraph.Edge, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT src, dst, relation FROM edges WHERE src = ? ORDER BY dst
	`, from)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var edges []*castgraph.Edge
	for rows.Next() {
		var e castgraph.Edge
		if err := rows.Scan(&e.From, &e.To, &e.Relation); err != nil {
			return nil, err
		}
		edges = append(edges, &e)
	}
	return edges, rows.Err()
}
