package neo4j

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/fwojciec/castgraph"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Compile-time interface verification.
var _ castgraph.GraphStore = (*GraphStore)(nil)

// Server error code reported when a uniqueness constraint rejects a write.
const constraintViolation = "Neo.ClientError.Schema.ConstraintValidationFailed"

// Node labels per vertex kind. Every vertex also carries :Vertex.
var kindLabels = map[string]string{
	castgraph.KindActor:      "Actor",
	castgraph.KindAppearance: "Appearance",
}

var relationRE = regexp.MustCompile(`^[a-z_]+$`)

// GraphStore implements castgraph.GraphStore on top of Cypher queries.
type GraphStore struct {
	runner Runner
}

// NewGraphStore creates a new GraphStore.
func NewGraphStore(runner Runner) *GraphStore {
	return &GraphStore{runner: runner}
}

// CreateVertex creates a vertex unless one with the same ID exists.
func (s *GraphStore) CreateVertex(ctx context.Context, v *castgraph.Vertex) error {
	if err := v.Validate(); err != nil {
		return err
	}

	query := fmt.Sprintf(`
		OPTIONAL MATCH (existing:Vertex {id: $id})
		WITH existing WHERE existing IS NULL
		CREATE (v:Vertex:%s {id: $id, label: $label, kind: $kind})
		RETURN v.id AS id
	`, kindLabels[v.Kind])

	result, err := s.runner.Run(ctx, query, map[string]any{
		"id":    v.ID,
		"label": v.Label,
		"kind":  v.Kind,
	})
	if err != nil {
		return translateError(err)
	}
	if len(result.Records) == 0 {
		return castgraph.Errorf(castgraph.ECONFLICT, "vertex %q already exists", v.ID)
	}
	return nil
}

// CreateEdge creates a relationship unless the same one exists.
func (s *GraphStore) CreateEdge(ctx context.Context, e *castgraph.Edge) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if !relationRE.MatchString(e.Relation) {
		return castgraph.Errorf(castgraph.EINVALID, "invalid relation %q", e.Relation)
	}

	query := fmt.Sprintf(`
		MATCH (a:Vertex {id: $from}), (b:Vertex {id: $to})
		OPTIONAL MATCH (a)-[r:%[1]s]->(b)
		WITH a, b, r
		FOREACH (_ IN CASE WHEN r IS NULL THEN [1] ELSE [] END | CREATE (a)-[:%[1]s]->(b))
		RETURN r IS NOT NULL AS existed
	`, strings.ToUpper(e.Relation))

	result, err := s.runner.Run(ctx, query, map[string]any{
		"from": e.From,
		"to":   e.To,
	})
	if err != nil {
		return translateError(err)
	}
	if len(result.Records) == 0 {
		return castgraph.Errorf(castgraph.ENOTFOUND, "edge %q -> %q: vertex not found", e.From, e.To)
	}
	if existed, _ := result.Records[0].Get("existed"); existed == true {
		return castgraph.Errorf(castgraph.ECONFLICT, "edge %q -> %q already exists", e.From, e.To)
	}
	return nil
}

// DropAll detaches and deletes every vertex.
func (s *GraphStore) DropAll(ctx context.Context) error {
	_, err := s.runner.Run(ctx, `MATCH (v:Vertex) DETACH DELETE v`, nil)
	return translateError(err)
}

// Stats counts actors, appearances and relationships.
func (s *GraphStore) Stats(ctx context.Context) (*castgraph.Stats, error) {
	result, err := s.runner.Run(ctx, `
		OPTIONAL MATCH (a:Actor) WITH count(a) AS actors
		OPTIONAL MATCH (p:Appearance) WITH actors, count(p) AS appearances
		OPTIONAL MATCH (:Vertex)-[r]->(:Vertex)
		RETURN actors, appearances, count(r) AS edges
	`, nil)
	if err != nil {
		return nil, translateError(err)
	}
	if len(result.Records) == 0 {
		return &castgraph.Stats{}, nil
	}

	record := result.Records[0]
	return &castgraph.Stats{
		Actors:      intValue(record, "actors"),
		Appearances: intValue(record, "appearances"),
		Edges:       intValue(record, "edges"),
	}, nil
}

func intValue(record *neo4j.Record, key string) int {
	v, _ := record.Get(key)
	n, _ := v.(int64)
	return int(n)
}

// translateError maps driver errors onto castgraph error codes.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var neoErr *neo4j.Neo4jError
	if errors.As(err, &neoErr) && neoErr.Code == constraintViolation {
		return castgraph.Errorf(castgraph.ECONFLICT, "%s", neoErr.Msg)
	}
	if neo4j.IsRetryable(err) {
		return castgraph.Errorf(castgraph.EUNAVAILABLE, "neo4j: %v", err)
	}
	return err
}
