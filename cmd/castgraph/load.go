package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/fwojciec/castgraph"
	"github.com/fwojciec/castgraph/bloom"
	"github.com/fwojciec/castgraph/etree"
	"github.com/fwojciec/castgraph/fs"
	"github.com/fwojciec/castgraph/ingest"
)

// Bloom filter sizing for --dedupe. A dump holds a few hundred thousand
// distinct works.
const (
	dedupeCapacity = 1_000_000
	dedupeFPRate   = 0.001
)

// reportEvery is the number of scanned pages between progress records.
const reportEvery = 100_000

// Run executes the load command.
func (c *LoadCmd) Run(deps *Dependencies) error {
	dump, err := fs.OpenDump(c.Dump)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	defer dump.Close()

	store := deps.Store
	if c.Rate > 0 {
		store = ingest.NewLimitedStore(store, c.Rate)
	}

	loader := ingest.NewLoader(store)
	loader.Timeout = c.Timeout

	if !c.Keep {
		if err := loader.Reset(deps.Ctx); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", castgraph.ErrorMessage(err))
			return err
		}
	}

	p := &ingest.Pipeline{
		Decoder:     etree.NewPageDecoder(),
		Loader:      loader,
		Categories:  categories(c.Category, deps.Categories),
		Concurrency: c.Concurrency,
		Logger:      deps.Logger,
		ReportEvery: reportEvery,
	}
	if c.Dedupe {
		p.Seen = bloom.NewFilter(dedupeCapacity, dedupeFPRate)
	}

	result, err := p.Run(deps.Ctx, dump)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Loaded %s actors with %s appearances from %s pages (%s)\n",
		humanize.Comma(int64(result.Loaded)),
		humanize.Comma(int64(result.Appearances)),
		humanize.Comma(int64(result.Pages)),
		humanize.Bytes(uint64(dump.Size())),
	)
	if result.Skipped > 0 {
		fmt.Fprintf(deps.Stdout, "Skipped %d malformed pages\n", result.Skipped)
	}
	return nil
}
