package main

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/avolkov/rigcat/telegram"
)

// Run executes the serve command: it primes the catalog from the snapshot
// and handles chat updates until interrupted.
func (c *ServeCmd) Run(deps *Dependencies) error {
	runner := telegram.NewRunner(deps.Bot, deps.Handler, deps.Logger)

	g, ctx := errgroup.WithContext(deps.Ctx)

	g.Go(func() error {
		rigs, ing, err := deps.Handler.Refresh(ctx)
		if err != nil {
			return err
		}
		deps.Logger.Info("catalog primed",
			"total", len(rigs),
			"appended", ing.Appended,
			"duplicates", ing.Duplicates,
		)
		return nil
	})

	g.Go(func() error {
		deps.Logger.Info("bot started")
		return runner.Run(ctx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	deps.Logger.Info("bot stopped")
	return nil
}
