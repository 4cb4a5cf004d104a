package main

import (
	"fmt"

	"github.com/avolkov/rigcat"
)

// Run executes the ingest command.
func (c *IngestCmd) Run(deps *Dependencies) error {
	rigs, ing, err := deps.Handler.Refresh(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", rigcat.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Catalog holds %d configurations (%d appended, %d duplicates skipped).\n",
		len(rigs), ing.Appended, ing.Duplicates)
	return nil
}
