// Package neo4j provides a Neo4j graph store for castgraph.
package neo4j

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Config holds the connection settings of a Neo4j server.
type Config struct {
	URI      string
	Username string
	Password string
	Database string
}

// Runner executes a single Cypher query and returns its records.
type Runner interface {
	Run(ctx context.Context, query string, params map[string]any) (*neo4j.EagerResult, error)
}

// DB represents a connection to a Neo4j server.
type DB struct {
	driver   neo4j.DriverWithContext
	database string
}

// Open connects to the server, verifies connectivity and creates the
// uniqueness constraint on vertex IDs.
func Open(ctx context.Context, cfg Config) (*DB, error) {
	driver, err := neo4j.NewDriverWithContext(cfg.URI, neo4j.BasicAuth(cfg.Username, cfg.Password, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to create driver: %w", err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		driver.Close(ctx)
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.URI, err)
	}

	db := &DB{driver: driver, database: cfg.Database}
	if _, err := db.Run(ctx, constraintQuery, nil); err != nil {
		driver.Close(ctx)
		return nil, fmt.Errorf("failed to create constraint: %w", err)
	}
	return db, nil
}

// Close closes the driver and its connection pool.
func (db *DB) Close(ctx context.Context) error {
	return db.driver.Close(ctx)
}

// Run executes a query in a managed write transaction.
func (db *DB) Run(ctx context.Context, query string, params map[string]any) (*neo4j.EagerResult, error) {
	opts := []neo4j.ExecuteQueryConfigurationOption{}
	if db.database != "" {
		opts = append(opts, neo4j.ExecuteQueryWithDatabase(db.database))
	}
	return neo4j.ExecuteQuery(ctx, db.driver, query, params, neo4j.EagerResultTransformer, opts...)
}

const constraintQuery = `CREATE CONSTRAINT vertex_id IF NOT EXISTS FOR (v:Vertex) REQUIRE v.id IS UNIQUE`
