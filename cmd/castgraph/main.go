package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/castgraph"
	castneo4j "github.com/fwojciec/castgraph/neo4j"
	"github.com/fwojciec/castgraph/postgres"
	castslog "github.com/fwojciec/castgraph/slog"
	"github.com/fwojciec/castgraph/sqlite"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Credentials may live in a .env file next to the dump.
	_ = godotenv.Load()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Store replaces the configured graph store when set. Used by tests.
	Store castgraph.GraphStore

	closers []func() error
}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{}
}

// Close releases the store connection.
func (m *Main) Close() error {
	var first error
	for i := len(m.closers) - 1; i >= 0; i-- {
		if err := m.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	m.closers = nil
	return first
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("castgraph"),
		kong.Description("Build a graph of voice actors and their works from a MediaWiki dump."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'castgraph --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps.Logger = newLogger(stderr, cli.Verbose)

	cfg, cats, err := resolveConfig(cli)
	if err != nil {
		return err
	}
	deps.Categories = cats

	// Extraction works on the dump alone.
	if command := strings.Fields(kongCtx.Command())[0]; command != "extract" {
		store, err := m.openStore(ctx, cfg, deps.Logger)
		if err != nil {
			fmt.Fprintf(stderr, "Hint: Set CASTGRAPH_STORE and CASTGRAPH_URI or edit %s\n", DefaultConfigFile)
			return err
		}
		defer m.Close()
		deps.Store = castslog.NewLoggingStore(store, deps.Logger)
	}

	return kongCtx.Run(deps)
}

// openStore connects to the configured graph store and registers its
// release with Close.
func (m *Main) openStore(ctx context.Context, cfg *StoreConfig, logger *slog.Logger) (castgraph.GraphStore, error) {
	if m.Store != nil {
		return m.Store, nil
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Kind {
	case "neo4j":
		db, err := castneo4j.Open(ctx, castneo4j.Config{
			URI:      cfg.URI,
			Username: cfg.User,
			Password: cfg.Password,
			Database: cfg.Database,
		})
		if err != nil {
			return nil, err
		}
		m.closers = append(m.closers, func() error { return db.Close(context.Background()) })
		logger.Info("store opened", "store", cfg.Kind, "database", cfg.Database)
		return castneo4j.NewGraphStore(db), nil

	case "postgres":
		db, err := postgres.Connect(ctx, cfg.URI)
		if err != nil {
			return nil, err
		}
		m.closers = append(m.closers, func() error { db.Close(); return nil })
		logger.Info("store opened", "store", cfg.Kind)
		return postgres.NewGraphStore(db), nil

	default:
		db := sqlite.NewDB(cfg.DB)
		if err := db.Open(); err != nil {
			return nil, fmt.Errorf("failed to open database at %q: %w", cfg.DB, err)
		}
		m.closers = append(m.closers, db.Close)
		logger.Info("store opened", "store", cfg.Kind, "path", cfg.DB)
		return sqlite.NewGraphStore(db), nil
	}
}

// newLogger returns a text logger on w tagged with a fresh run ID.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With("run", uuid.NewString())
}
