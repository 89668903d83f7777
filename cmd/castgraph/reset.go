package main

import (
	"fmt"

	"github.com/fwojciec/castgraph"
)

// Run executes the reset command.
func (c *ResetCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm removal\n")
		return castgraph.Errorf(castgraph.EINVALID, "use --force to confirm removal")
	}

	if err := deps.Store.DropAll(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", castgraph.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, "Removed all vertices and edges")
	return nil
}
