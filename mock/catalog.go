package mock

import (
	"context"

	"github.com/avolkov/rigcat"
)

var _ rigcat.CatalogService = (*CatalogService)(nil)

// CatalogService is a mock implementation of rigcat.CatalogService.
type CatalogService struct {
	LoadFn   func(ctx context.Context) ([]rigcat.Rig, error)
	IngestFn func(ctx context.Context, rigs []rigcat.Rig) (*rigcat.IngestResult, error)
}

func (s *CatalogService) Load(ctx context.Context) ([]rigcat.Rig, error) {
	return s.LoadFn(ctx)
}

func (s *CatalogService) Ingest(ctx context.Context, rigs []rigcat.Rig) (*rigcat.IngestResult, error) {
	return s.IngestFn(ctx, rigs)
}
