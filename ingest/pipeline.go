package ingest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fwojciec/castgraph"
	"golang.org/x/sync/errgroup"
)

// Pipeline reads a dump, selects actor pages by category and loads each
// actor with the works they appeared in.
type Pipeline struct {
	Decoder castgraph.PageDecoder
	Loader  *Loader

	// Categories gate which pages are processed. Empty means
	// castgraph.DefaultCategories.
	Categories []string

	// Concurrency is the number of pages processed at once. Values below
	// 1 process pages sequentially.
	Concurrency int

	// Seen, if set, lets appearance creates be skipped for IDs that were
	// already written during the run.
	Seen castgraph.SeenFilter

	Logger *slog.Logger

	// ReportEvery is the number of scanned pages between progress records.
	// Zero disables progress reporting.
	ReportEvery int
}

// Result holds the outcome of a pipeline run.
type Result struct {
	Pages       int `json:"pages"`       // units read from the dump
	Matched     int `json:"matched"`     // units in one of the categories
	Loaded      int `json:"loaded"`      // actors written
	Skipped     int `json:"skipped"`     // malformed units
	Appearances int `json:"appearances"` // actor to work edges written
}

type counters struct {
	pages       atomic.Int64
	matched     atomic.Int64
	loaded      atomic.Int64
	skipped     atomic.Int64
	appearances atomic.Int64
}

func (c *counters) result() *Result {
	return &Result{
		Pages:       int(c.pages.Load()),
		Matched:     int(c.matched.Load()),
		Loaded:      int(c.loaded.Load()),
		Skipped:     int(c.skipped.Load()),
		Appearances: int(c.appearances.Load()),
	}
}

// Run processes every page in r. Malformed pages are skipped; any other
// error stops the run and is returned with the counts reached so far.
func (p *Pipeline) Run(ctx context.Context, r io.Reader) (*Result, error) {
	categories := p.Categories
	if len(categories) == 0 {
		categories = castgraph.DefaultCategories
	}
	concurrency := max(p.Concurrency, 1)
	logger := p.logger()

	var c counters
	scanner := castgraph.NewPageScanner(r)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	begin := time.Now()
	var scanErr error
	for gctx.Err() == nil {
		raw, err := scanner.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			scanErr = fmt.Errorf("read dump: %w", err)
			break
		}

		n := c.pages.Add(1)
		if p.ReportEvery > 0 && n%int64(p.ReportEvery) == 0 {
			p.report(gctx, &c, scanner.Offset(), time.Since(begin))
		}

		if !castgraph.MatchesCategory(raw, categories) {
			continue
		}
		c.matched.Add(1)

		g.Go(func() error {
			return p.processPage(gctx, raw, &c)
		})
	}

	if err := g.Wait(); err != nil {
		return c.result(), err
	}
	if scanErr != nil {
		return c.result(), scanErr
	}
	if err := ctx.Err(); err != nil {
		return c.result(), err
	}

	result := c.result()
	logger.InfoContext(ctx, "run finished",
		"pages", humanize.Comma(int64(result.Pages)),
		"loaded", humanize.Comma(int64(result.Loaded)),
		"skipped", result.Skipped,
		"appearances", humanize.Comma(int64(result.Appearances)),
		"read", humanize.Bytes(uint64(scanner.Offset())),
		"duration", time.Since(begin).Round(time.Millisecond),
	)
	return result, nil
}

// processPage decodes one unit and loads its actor, appearances and edges.
func (p *Pipeline) processPage(ctx context.Context, raw string, c *counters) error {
	logger := p.logger()

	page, err := p.Decoder.Decode(raw)
	if castgraph.ErrorCode(err) == castgraph.EMALFORMED {
		c.skipped.Add(1)
		logger.WarnContext(ctx, "page skipped", "reason", castgraph.ErrorMessage(err))
		return nil
	} else if err != nil {
		return err
	}

	titles := castgraph.ExtractAppearances(page.Text)

	actorID, err := p.Loader.UpsertActor(ctx, page.Title)
	if err != nil {
		return fmt.Errorf("load actor %q: %w", page.Title, err)
	}
	for _, title := range titles {
		if err := p.loadAppearance(ctx, actorID, title); err != nil {
			return fmt.Errorf("load appearance %q of %q: %w", title, page.Title, err)
		}
	}

	c.loaded.Add(1)
	c.appearances.Add(int64(len(titles)))
	logger.DebugContext(ctx, "page processed",
		"title", page.Title,
		"hash", page.Hash,
		"appearances", len(titles),
	)
	return nil
}

// loadAppearance writes the appearance vertex and the actor's edge to it.
// When Seen claims the vertex exists but the store has no such endpoint,
// the vertex is created and the edge retried.
func (p *Pipeline) loadAppearance(ctx context.Context, actorID, title string) error {
	id := castgraph.AppearanceID(title)

	skipped := p.Seen != nil && p.Seen.TestAndAdd(id)
	if !skipped {
		if _, err := p.Loader.UpsertAppearance(ctx, title); err != nil {
			return err
		}
	}

	err := p.Loader.UpsertEdge(ctx, actorID, id)
	if !skipped || castgraph.ErrorCode(err) != castgraph.ENOTFOUND {
		return err
	}

	if _, err := p.Loader.UpsertAppearance(ctx, title); err != nil {
		return err
	}
	return p.Loader.UpsertEdge(ctx, actorID, id)
}

func (p *Pipeline) report(ctx context.Context, c *counters, offset int64, elapsed time.Duration) {
	pages := c.pages.Load()
	rate := float64(pages) / max(elapsed.Seconds(), 1e-3)
	p.logger().InfoContext(ctx, "progress",
		"pages", humanize.Comma(pages),
		"matched", humanize.Comma(c.matched.Load()),
		"loaded", humanize.Comma(c.loaded.Load()),
		"read", humanize.Bytes(uint64(offset)),
		"rate", fmt.Sprintf("%s pages/s", humanize.CommafWithDigits(rate, 0)),
	)
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return p.Logger
}
