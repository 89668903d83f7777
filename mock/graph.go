package mock

import (
	"context"

	"github.com/fwojciec/castgraph"
)

// Compile-time interface verification.
var (
	_ castgraph.GraphStore = (*GraphStore)(nil)
	_ castgraph.SeenFilter = (*SeenFilter)(nil)
)

// GraphStore is a mock implementation of castgraph.GraphStore.
type GraphStore struct {
	CreateVertexFn func(ctx context.Context, v *castgraph.Vertex) error
	CreateEdgeFn   func(ctx context.Context, e *castgraph.Edge) error
	DropAllFn      func(ctx context.Context) error
	StatsFn        func(ctx context.Context) (*castgraph.Stats, error)
}

func (s *GraphStore) CreateVertex(ctx context.Context, v *castgraph.Vertex) error {
	return s.CreateVertexFn(ctx, v)
}

func (s *GraphStore) CreateEdge(ctx context.Context, e *castgraph.Edge) error {
	return s.CreateEdgeFn(ctx, e)
}

func (s *GraphStore) DropAll(ctx context.Context) error {
	return s.DropAllFn(ctx)
}

func (s *GraphStore) Stats(ctx context.Context) (*castgraph.Stats, error) {
	return s.StatsFn(ctx)
}

// SeenFilter is a mock implementation of castgraph.SeenFilter.
type SeenFilter struct {
	TestAndAddFn func(id string) bool
}

func (f *SeenFilter) TestAndAdd(id string) bool {
	return f.TestAndAddFn(id)
}
