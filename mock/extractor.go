package mock

import "github.com/avolkov/rigcat"

var _ rigcat.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of rigcat.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*rigcat.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*rigcat.ExtractResult, error) {
	return e.ExtractFn(html)
}
