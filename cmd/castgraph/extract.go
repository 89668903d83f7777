package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/fwojciec/castgraph"
	"github.com/fwojciec/castgraph/etree"
	"github.com/fwojciec/castgraph/fs"
)

// Run executes the extract command. Each appearance is printed as
// "actor<TAB>title"; an actor without appearances gets a line of its own.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	dump, err := fs.OpenDump(c.Dump)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	defer dump.Close()

	w := bufio.NewWriter(deps.Stdout)
	defer w.Flush()

	labels := categories(c.Category, deps.Categories)
	decoder := etree.NewPageDecoder()
	scanner := castgraph.NewPageScanner(dump)
	for {
		raw, err := scanner.Next()
		if err == io.EOF {
			break
		} else if err != nil {
			return fmt.Errorf("read dump: %w", err)
		}

		if !castgraph.MatchesCategory(raw, labels) {
			continue
		}

		page, err := decoder.Decode(raw)
		if castgraph.ErrorCode(err) == castgraph.EMALFORMED {
			deps.Logger.Warn("page skipped", "reason", castgraph.ErrorMessage(err))
			continue
		} else if err != nil {
			return err
		}

		actor := castgraph.EscapeTitle(page.Title)
		titles := castgraph.ExtractAppearances(page.Text)
		if len(titles) == 0 {
			fmt.Fprintln(w, actor)
			continue
		}
		for _, title := range titles {
			fmt.Fprintf(w, "%s\t%s\n", actor, title)
		}
	}
	return nil
}
