package mock

import (
	"context"

	"github.com/avolkov/rigcat"
)

var _ rigcat.Analyst = (*Analyst)(nil)

// Analyst is a mock implementation of rigcat.Analyst.
type Analyst struct {
	AnalyzeFn func(ctx context.Context, summary *rigcat.CatalogSummary) (string, error)
	AnswerFn  func(ctx context.Context, summary *rigcat.CatalogSummary, question string) (string, error)
}

func (a *Analyst) Analyze(ctx context.Context, summary *rigcat.CatalogSummary) (string, error) {
	return a.AnalyzeFn(ctx, summary)
}

func (a *Analyst) Answer(ctx context.Context, summary *rigcat.CatalogSummary, question string) (string, error) {
	return a.AnswerFn(ctx, summary, question)
}
