package main

import (
	"fmt"
	"strings"

	"github.com/avolkov/rigcat"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	query := strings.Join(c.Query, " ")

	rigs, err := deps.Catalog.Load(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", rigcat.ErrorMessage(err))
		return err
	}

	var results []rigcat.Rig
	if c.Component != "" {
		comp := rigcat.Component(strings.ToLower(c.Component))
		if !comp.Valid() {
			fmt.Fprintf(deps.Stderr, "error: unknown component %q, expected cpu, gpu or ram\n", c.Component)
			return rigcat.Errorf(rigcat.EINVALID, "unknown component %q", c.Component)
		}
		results = rigcat.SearchByField(rigs, comp, query)
	} else {
		results = rigcat.SearchByFullConfig(rigs, query)
	}

	fmt.Fprintln(deps.Stdout, rigcat.FormatRigs(results))
	return nil
}
