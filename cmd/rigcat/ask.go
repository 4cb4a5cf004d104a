package main

import (
	"fmt"

	"github.com/avolkov/rigcat"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	reply, err := deps.Handler.HandleQuestion(deps.Ctx, c.Question)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", rigcat.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, reply.Text)
	return nil
}
