package main

import (
	"fmt"
	"strings"

	"github.com/avolkov/rigcat"
)

// Run executes the stats command.
func (c *StatsCmd) Run(deps *Dependencies) error {
	rigs, err := deps.Catalog.Load(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", rigcat.ErrorMessage(err))
		return err
	}
	if len(rigs) == 0 {
		fmt.Fprintln(deps.Stdout, "The catalog is empty. Run 'rigcat ingest' first.")
		return nil
	}

	if c.Component == "" {
		fmt.Fprintln(deps.Stdout, rigcat.FormatOverview(rigcat.Overview(rigs)))
		fmt.Fprintln(deps.Stdout)
		fmt.Fprintln(deps.Stdout, rigcat.FormatPriceSummary(rigcat.SummarizePrices(rigs)))
		return nil
	}

	comp := rigcat.Component(strings.ToLower(c.Component))
	if !comp.Valid() {
		fmt.Fprintf(deps.Stderr, "error: unknown component %q, expected cpu, gpu or ram\n", c.Component)
		return rigcat.Errorf(rigcat.EINVALID, "unknown component %q", c.Component)
	}

	counts := rigcat.CountComponents(rigs, comp)
	title := strings.ToUpper(string(comp)) + " breakdown"
	fmt.Fprintln(deps.Stdout, rigcat.FormatComponentCounts(title, counts, 0))
	return nil
}
