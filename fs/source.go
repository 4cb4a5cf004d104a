package fs

import (
	"context"
	"os"

	"github.com/avolkov/rigcat"
)

// Ensure SnapshotSource implements rigcat.SourceLoader at compile time.
var _ rigcat.SourceLoader = (*SnapshotSource)(nil)

// SnapshotSource loads the static HTML snapshot rigs are extracted from.
type SnapshotSource struct {
	path string
}

// NewSnapshotSource creates a new SnapshotSource reading the given file.
func NewSnapshotSource(path string) *SnapshotSource {
	return &SnapshotSource{path: path}
}

// LoadHTML returns the snapshot document. A missing or unreadable file
// returns EUNAVAILABLE; callers degrade to the stored catalog.
func (s *SnapshotSource) LoadHTML(ctx context.Context) (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", rigcat.Errorf(rigcat.EUNAVAILABLE, "snapshot %q unavailable: %v", s.path, err)
	}
	return string(data), nil
}
