package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/castgraph"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Logger     *slog.Logger
	Store      castgraph.GraphStore
	Categories []string
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config   string `help:"YAML configuration file (default castgraph.yaml if present)" env:"CASTGRAPH_CONFIG"`
	Store    string `help:"Graph store: sqlite, neo4j or postgres" env:"CASTGRAPH_STORE"`
	DB       string `name:"db" help:"SQLite database path" env:"CASTGRAPH_DB"`
	URI      string `name:"uri" help:"Neo4j or PostgreSQL connection URI" env:"CASTGRAPH_URI"`
	User     string `help:"Neo4j user" env:"CASTGRAPH_USER"`
	Password string `help:"Neo4j password" env:"CASTGRAPH_PASSWORD"`
	Database string `help:"Neo4j database name" env:"CASTGRAPH_DATABASE"`
	Verbose  bool   `short:"v" help:"Log every store write"`

	Load    LoadCmd    `cmd:"" help:"Load actors and their appearances from a dump"`
	Extract ExtractCmd `cmd:"" help:"Print actors and their appearances without a store"`
	Reset   ResetCmd   `cmd:"" help:"Remove every vertex and edge from the store"`
	Stats   StatsCmd   `cmd:"" help:"Show vertex and edge counts"`
}

// StoreConfig returns the store settings given on the command line.
func (c *CLI) StoreConfig() StoreConfig {
	return StoreConfig{
		Kind:     c.Store,
		DB:       c.DB,
		URI:      c.URI,
		User:     c.User,
		Password: c.Password,
		Database: c.Database,
	}
}

// LoadCmd is the "load" subcommand.
type LoadCmd struct {
	Dump        string        `arg:"" help:"Path to the XML dump, plain or bzip2"`
	Concurrency int           `short:"c" default:"1" help:"Pages processed at once"`
	Rate        float64       `help:"Maximum store writes per second (0 for unlimited)"`
	Timeout     time.Duration `default:"30s" help:"Timeout of a single store call"`
	Category    []string      `short:"C" help:"Category label selecting pages (repeatable)"`
	Keep        bool          `help:"Keep the existing graph instead of resetting it"`
	Dedupe      bool          `help:"Skip repeated appearance writes using a Bloom filter"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	Dump     string   `arg:"" help:"Path to the XML dump, plain or bzip2"`
	Category []string `short:"C" help:"Category label selecting pages (repeatable)"`
}

// ResetCmd is the "reset" subcommand.
type ResetCmd struct {
	Force bool `help:"Confirm removal"`
}

// StatsCmd is the "stats" subcommand.
type StatsCmd struct{}

// categories returns the first non-empty label list.
func categories(lists ...[]string) []string {
	for _, l := range lists {
		if len(l) > 0 {
			return l
		}
	}
	return castgraph.DefaultCategories
}
