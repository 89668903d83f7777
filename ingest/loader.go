// Package ingest loads actor and appearance vertices extracted from a dump
// into a graph store.
package ingest

import (
	"context"
	"time"

	"github.com/fwojciec/castgraph"
)

// DefaultTimeout bounds a single store call.
const DefaultTimeout = 30 * time.Second

// DefaultRetryDelays returns the backoff delays for unavailable stores: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// Loader writes vertices and edges one create request at a time. A
// conflict means the item is already present and counts as success.
type Loader struct {
	Store castgraph.GraphStore

	// Timeout bounds each store call. Zero means DefaultTimeout.
	Timeout time.Duration

	// RetryDelays are the waits between attempts of a call that failed
	// with EUNAVAILABLE. Nil means no retries.
	RetryDelays []time.Duration
}

// NewLoader returns a Loader with the default timeout and retry delays.
func NewLoader(store castgraph.GraphStore) *Loader {
	return &Loader{
		Store:       store,
		Timeout:     DefaultTimeout,
		RetryDelays: DefaultRetryDelays(),
	}
}

// Reset removes every vertex and edge from the store.
func (l *Loader) Reset(ctx context.Context) error {
	return l.do(ctx, l.Store.DropAll)
}

// UpsertActor ensures the actor vertex for name exists and returns its ID.
func (l *Loader) UpsertActor(ctx context.Context, name string) (string, error) {
	v := castgraph.NewActor(name)
	if err := l.createVertex(ctx, v); err != nil {
		return "", err
	}
	return v.ID, nil
}

// UpsertAppearance ensures the appearance vertex for an escaped title exists
// and returns its ID.
func (l *Loader) UpsertAppearance(ctx context.Context, title string) (string, error) {
	v := castgraph.NewAppearance(title)
	if err := l.createVertex(ctx, v); err != nil {
		return "", err
	}
	return v.ID, nil
}

// UpsertEdge ensures the actor has an edge to the appearance.
func (l *Loader) UpsertEdge(ctx context.Context, actorID, appearanceID string) error {
	e := &castgraph.Edge{From: actorID, To: appearanceID, Relation: castgraph.RelationHas}
	err := l.do(ctx, func(ctx context.Context) error {
		return l.Store.CreateEdge(ctx, e)
	})
	return ignoreConflict(err)
}

func (l *Loader) createVertex(ctx context.Context, v *castgraph.Vertex) error {
	err := l.do(ctx, func(ctx context.Context) error {
		return l.Store.CreateVertex(ctx, v)
	})
	return ignoreConflict(err)
}

// do runs fn under the per-call timeout, retrying while the store reports
// EUNAVAILABLE.
func (l *Loader) do(ctx context.Context, fn func(ctx context.Context) error) error {
	maxAttempts := len(l.RetryDelays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		lastErr = l.call(ctx, fn)
		if castgraph.ErrorCode(lastErr) != castgraph.EUNAVAILABLE {
			return lastErr
		}

		if attempt >= maxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(l.RetryDelays[attempt]):
		}
	}
	return lastErr
}

func (l *Loader) call(ctx context.Context, fn func(ctx context.Context) error) error {
	timeout := l.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return fn(ctx)
}

func ignoreConflict(err error) error {
	if castgraph.ErrorCode(err) == castgraph.ECONFLICT {
		return nil
	}
	return err
}
