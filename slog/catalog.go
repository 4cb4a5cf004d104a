// Package slog provides logging decorators for the domain services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/avolkov/rigcat"
)

// Ensure LoggingCatalogService implements rigcat.CatalogService.
var _ rigcat.CatalogService = (*LoggingCatalogService)(nil)

// LoggingCatalogService wraps a CatalogService with operational logging.
type LoggingCatalogService struct {
	next   rigcat.CatalogService
	logger *slog.Logger
}

// NewLoggingCatalogService creates a new LoggingCatalogService.
func NewLoggingCatalogService(next rigcat.CatalogService, logger *slog.Logger) *LoggingCatalogService {
	return &LoggingCatalogService{next: next, logger: logger}
}

// Load delegates to the wrapped service and logs the operation.
func (s *LoggingCatalogService) Load(ctx context.Context) (rigs []rigcat.Rig, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("catalog load",
			"count", len(rigs),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Load(ctx)
}

// Ingest delegates to the wrapped service and logs the outcome.
func (s *LoggingCatalogService) Ingest(ctx context.Context, batch []rigcat.Rig) (res *rigcat.IngestResult, err error) {
	defer func(begin time.Time) {
		appended, duplicates := 0, 0
		if res != nil {
			appended, duplicates = res.Appended, res.Duplicates
		}
		s.logger.Info("catalog ingest",
			"batch", len(batch),
			"appended", appended,
			"duplicates", duplicates,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Ingest(ctx, batch)
}
