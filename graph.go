package castgraph

import "context"

// Vertex kinds.
const (
	KindActor      = "actor"
	KindAppearance = "appearance"
)

// RelationHas links an actor to a work they appeared in.
const RelationHas = "has"

// Vertex is a node in the cast graph.
type Vertex struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Kind  string `json:"kind"`
}

// Validate returns an error if the vertex contains invalid fields.
func (v *Vertex) Validate() error {
	if v.ID == "" {
		return Errorf(EINVALID, "vertex ID required")
	}
	if v.Kind != KindActor && v.Kind != KindAppearance {
		return Errorf(EINVALID, "unknown vertex kind %q", v.Kind)
	}
	return nil
}

// NewActor returns the actor vertex for an article title.
// The escaped title serves as both ID and label.
func NewActor(name string) *Vertex {
	escaped := EscapeTitle(name)
	return &Vertex{ID: escaped, Label: escaped, Kind: KindActor}
}

// NewAppearance returns the appearance vertex for an escaped work title.
func NewAppearance(title string) *Vertex {
	return &Vertex{ID: AppearanceID(title), Label: title, Kind: KindAppearance}
}

// Edge is a directed relation between two vertices.
type Edge struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Relation string `json:"relation"`
}

// Validate returns an error if the edge contains invalid fields.
func (e *Edge) Validate() error {
	if e.From == "" || e.To == "" {
		return Errorf(EINVALID, "edge endpoints required")
	}
	if e.Relation == "" {
		return Errorf(EINVALID, "edge relation required")
	}
	return nil
}

// Stats summarizes the contents of a graph store.
type Stats struct {
	Actors      int `json:"actors"`
	Appearances int `json:"appearances"`
	Edges       int `json:"edges"`
}

// GraphStore is the write boundary of a graph database.
type GraphStore interface {
	// CreateVertex creates a vertex.
	// Returns ECONFLICT if a vertex with the same ID exists.
	CreateVertex(ctx context.Context, v *Vertex) error

	// CreateEdge creates an edge between two existing vertices.
	// Returns ECONFLICT if the same edge exists and ENOTFOUND if either
	// endpoint does not.
	CreateEdge(ctx context.Context, e *Edge) error

	// DropAll removes every vertex and edge.
	DropAll(ctx context.Context) error

	// Stats counts the vertices and edges in the store.
	Stats(ctx context.Context) (*Stats, error)
}

// SeenFilter remembers vertex IDs that have already been written.
// It may report false positives but never false negatives.
type SeenFilter interface {
	// TestAndAdd reports whether id may have been added before and adds it.
	TestAndAdd(id string) bool
}
