package mock

import (
	"context"

	"github.com/avolkov/rigcat"
)

var _ rigcat.SourceLoader = (*SourceLoader)(nil)

// SourceLoader is a mock implementation of rigcat.SourceLoader.
type SourceLoader struct {
	LoadHTMLFn func(ctx context.Context) (string, error)
}

func (s *SourceLoader) LoadHTML(ctx context.Context) (string, error) {
	return s.LoadHTMLFn(ctx)
}
