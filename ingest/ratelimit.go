package ingest

import (
	"context"

	"github.com/fwojciec/castgraph"
	"golang.org/x/time/rate"
)

var _ castgraph.GraphStore = (*LimitedStore)(nil)

// LimitedStore caps the write rate of a GraphStore using a token bucket.
// Reads are not limited.
type LimitedStore struct {
	store   castgraph.GraphStore
	limiter *rate.Limiter
}

// NewLimitedStore wraps store so that it accepts at most wps writes per
// second. Bursting is not allowed.
func NewLimitedStore(store castgraph.GraphStore, wps float64) *LimitedStore {
	return &LimitedStore{
		store:   store,
		limiter: rate.NewLimiter(rate.Limit(wps), 1),
	}
}

// CreateVertex waits for the limiter and creates the vertex.
func (s *LimitedStore) CreateVertex(ctx context.Context, v *castgraph.Vertex) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}
	return s.store.CreateVertex(ctx, v)
}

// CreateEdge waits for the limiter and creates the edge.
func (s *LimitedStore) CreateEdge(ctx context.Context, e *castgraph.Edge) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}
	return s.store.CreateEdge(ctx, e)
}

// DropAll waits for the limiter and drops the graph.
func (s *LimitedStore) DropAll(ctx context.Context) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}
	return s.store.DropAll(ctx)
}

// Stats returns the wrapped store's counts.
func (s *LimitedStore) Stats(ctx context.Context) (*castgraph.Stats, error) {
	return s.store.Stats(ctx)
}
