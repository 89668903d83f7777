package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/fwojciec/castgraph"
)

// Run executes the stats command.
func (c *StatsCmd) Run(deps *Dependencies) error {
	stats, err := deps.Store.Stats(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", castgraph.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "actors       %s\n", humanize.Comma(int64(stats.Actors)))
	fmt.Fprintf(deps.Stdout, "appearances  %s\n", humanize.Comma(int64(stats.Appearances)))
	fmt.Fprintf(deps.Stdout, "edges        %s\n", humanize.Comma(int64(stats.Edges)))
	return nil
}
