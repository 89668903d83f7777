// Package slog provides logging decorators for castgraph services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/castgraph"
)

// Ensure LoggingStore implements castgraph.GraphStore.
var _ castgraph.GraphStore = (*LoggingStore)(nil)

// LoggingStore wraps a GraphStore with debug logging of every call.
type LoggingStore struct {
	next   castgraph.GraphStore
	logger *slog.Logger
}

// NewLoggingStore creates a new LoggingStore.
func NewLoggingStore(next castgraph.GraphStore, logger *slog.Logger) *LoggingStore {
	return &LoggingStore{next: next, logger: logger}
}

// CreateVertex delegates to the wrapped store and logs the write.
func (s *LoggingStore) CreateVertex(ctx context.Context, v *castgraph.Vertex) (err error) {
	defer func(begin time.Time) {
		s.logWrite(ctx, "create vertex", err, begin,
			slog.String("kind", v.Kind),
			slog.String("id", v.ID),
		)
	}(time.Now())
	return s.next.CreateVertex(ctx, v)
}

// CreateEdge delegates to the wrapped store and logs the write.
func (s *LoggingStore) CreateEdge(ctx context.Context, e *castgraph.Edge) (err error) {
	defer func(begin time.Time) {
		s.logWrite(ctx, "create edge", err, begin,
			slog.String("relation", e.Relation),
			slog.String("from", e.From),
			slog.String("to", e.To),
		)
	}(time.Now())
	return s.next.CreateEdge(ctx, e)
}

// DropAll delegates to the wrapped store and logs the operation.
func (s *LoggingStore) DropAll(ctx context.Context) (err error) {
	defer func(begin time.Time) {
		s.logger.InfoContext(ctx, "drop all",
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DropAll(ctx)
}

// Stats delegates to the wrapped store and logs the counts.
func (s *LoggingStore) Stats(ctx context.Context) (stats *castgraph.Stats, err error) {
	defer func(begin time.Time) {
		attrs := []any{"duration", time.Since(begin), "err", err}
		if stats != nil {
			attrs = append(attrs,
				"actors", stats.Actors,
				"appearances", stats.Appearances,
				"edges", stats.Edges,
			)
		}
		s.logger.DebugContext(ctx, "stats", attrs...)
	}(time.Now())
	return s.next.Stats(ctx)
}

// logWrite records a create call. Conflicts are expected on re-runs and
// are logged without an error.
func (s *LoggingStore) logWrite(ctx context.Context, msg string, err error, begin time.Time, attrs ...slog.Attr) {
	conflict := castgraph.ErrorCode(err) == castgraph.ECONFLICT
	attrs = append(attrs,
		slog.Duration("duration", time.Since(begin)),
		slog.Bool("conflict", conflict),
	)
	level := slog.LevelDebug
	if err != nil && !conflict {
		level = slog.LevelWarn
		attrs = append(attrs, slog.Any("err", err))
	}
	s.logger.LogAttrs(ctx, level, msg, attrs...)
}
