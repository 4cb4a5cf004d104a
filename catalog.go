package rigcat

import "context"

// IngestResult reports the outcome of merging a batch of extracted rigs
// into the catalog.
type IngestResult struct {
	// Appended is the number of rigs added to the catalog.
	Appended int

	// Duplicates is the number of rigs skipped because a rig with the
	// same identity key was already present.
	Duplicates int
}

// CatalogService manages the persisted, deduplicated catalog of rigs.
// The catalog is append-only: rigs are never removed or edited.
type CatalogService interface {
	// Load reads the persisted catalog in insertion order. A missing or
	// unreadable backing file yields an empty catalog, not an error.
	Load(ctx context.Context) ([]Rig, error)

	// Ingest merges newly extracted rigs into the catalog, skipping any
	// whose identity key is already present. Batch order is preserved.
	// The catalog is persisted only when at least one rig was appended,
	// which makes re-ingesting an unchanged source a no-op.
	Ingest(ctx context.Context, rigs []Rig) (*IngestResult, error)
}

// SourceLoader provides the HTML snapshot rigs are extracted from.
type SourceLoader interface {
	// LoadHTML returns the snapshot document. Returns EUNAVAILABLE when
	// the snapshot is missing or unreadable; callers degrade to the
	// stored catalog.
	LoadHTML(ctx context.Context) (string, error)
}
