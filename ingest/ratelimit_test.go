package ingest_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/castgraph"
	"github.com/fwojciec/castgraph/ingest"
	"github.com/fwojciec/castgraph/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCountingStore() *mock.GraphStore {
	return &mock.GraphStore{
		CreateVertexFn: func(context.Context, *castgraph.Vertex) error { return nil },
		CreateEdgeFn:   func(context.Context, *castgraph.Edge) error { return nil },
		DropAllFn:      func(context.Context) error { return nil },
		StatsFn: func(context.Context) (*castgraph.Stats, error) {
			return &castgraph.Stats{Actors: 1}, nil
		},
	}
}

func TestLimitedStore(t *testing.T) {
	t.Parallel()

	t.Run("first write is immediate", func(t *testing.T) {
		t.Parallel()

		store := ingest.NewLimitedStore(newCountingStore(), 10)

		start := time.Now()
		err := store.CreateVertex(context.Background(), castgraph.NewActor("Someone"))
		elapsed := time.Since(start)

		require.NoError(t, err)
		assert.Less(t, elapsed, 50*time.Millisecond, "first write should be immediate")
	})

	t.Run("spaces consecutive writes", func(t *testing.T) {
		t.Parallel()

		store := ingest.NewLimitedStore(newCountingStore(), 10) // 100ms between writes

		require.NoError(t, store.CreateVertex(context.Background(), castgraph.NewActor("Someone")))

		start := time.Now()
		err := store.CreateEdge(context.Background(), &castgraph.Edge{From: "a", To: "b", Relation: castgraph.RelationHas})
		elapsed := time.Since(start)

		require.NoError(t, err)
		assert.GreaterOrEqual(t, elapsed, 80*time.Millisecond, "should wait for rate limit")
	})

	t.Run("reads are not limited", func(t *testing.T) {
		t.Parallel()

		store := ingest.NewLimitedStore(newCountingStore(), 1)
		require.NoError(t, store.DropAll(context.Background()))

		start := time.Now()
		stats, err := store.Stats(context.Background())
		elapsed := time.Since(start)

		require.NoError(t, err)
		assert.Equal(t, 1, stats.Actors)
		assert.Less(t, elapsed, 50*time.Millisecond)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		store := ingest.NewLimitedStore(newCountingStore(), 1)
		require.NoError(t, store.CreateVertex(context.Background(), castgraph.NewActor("Someone")))

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		err := store.CreateVertex(ctx, castgraph.NewActor("Someone else"))

		require.Error(t, err)
	})
}
