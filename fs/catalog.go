// Package fs provides file-based storage for the rig catalog and the
// HTML snapshot it is ingested from.
package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/avolkov/rigcat"
	"github.com/avolkov/rigcat/bloom"
)

// seenFilterFPRate is the false positive rate of the Bloom pre-check used
// during ingestion. False positives only cost an extra map lookup.
const seenFilterFPRate = 0.01

// Ensure CatalogStore implements rigcat.CatalogService at compile time.
var _ rigcat.CatalogService = (*CatalogStore)(nil)

// CatalogStore persists the catalog as a pretty-printed JSON array so the
// file stays human-readable and diffable.
type CatalogStore struct {
	path string
}

// NewCatalogStore creates a new CatalogStore backed by the given file.
func NewCatalogStore(path string) *CatalogStore {
	return &CatalogStore{path: path}
}

// Load reads the persisted catalog. A missing or unreadable file is an
// empty catalog, never an error: queries degrade to whatever data exists.
func (s *CatalogStore) Load(ctx context.Context) ([]rigcat.Rig, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, nil
	}

	var rigs []rigcat.Rig
	if err := json.Unmarshal(data, &rigs); err != nil {
		return nil, nil
	}
	return rigs, nil
}

// Ingest merges newly extracted rigs into the catalog. Identity keys are
// compared through a Bloom pre-check backed by an exact key set, so a
// filter false positive can never misclassify a new rig as a duplicate.
// The file is rewritten only when at least one rig was appended.
func (s *CatalogStore) Ingest(ctx context.Context, rigs []rigcat.Rig) (*rigcat.IngestResult, error) {
	existing, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	filter := bloom.NewFilter(uint(len(existing)+len(rigs)+1), seenFilterFPRate)
	seen := make(map[string]struct{}, len(existing))
	for _, r := range existing {
		key := r.Key()
		seen[key] = struct{}{}
		filter.Add(r.KeyHash())
	}

	res := &rigcat.IngestResult{}
	merged := existing
	for _, r := range rigs {
		key := r.Key()
		if filter.Test(r.KeyHash()) {
			if _, ok := seen[key]; ok {
				res.Duplicates++
				continue
			}
		}
		merged = append(merged, r)
		seen[key] = struct{}{}
		filter.Add(r.KeyHash())
		res.Appended++
	}

	if res.Appended > 0 {
		if err := s.save(merged); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func (s *CatalogStore) save(rigs []rigcat.Rig) error {
	data, err := json.MarshalIndent(rigs, "", "  ")
	if err != nil {
		return rigcat.Errorf(rigcat.EINTERNAL, "failed to encode catalog: %v", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return rigcat.Errorf(rigcat.EINTERNAL, "failed to create catalog directory: %v", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return rigcat.Errorf(rigcat.EINTERNAL, "failed to write catalog: %v", err)
	}
	return nil
}
