package main

import (
	"fmt"

	"github.com/avolkov/rigcat"
	"github.com/avolkov/rigcat/bot"
)

// Run executes the analyze command.
func (c *AnalyzeCmd) Run(deps *Dependencies) error {
	reply, err := deps.Handler.HandleAction(deps.Ctx, bot.ActionAnalyze)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", rigcat.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, reply.Text)
	return nil
}
