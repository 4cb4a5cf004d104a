package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolkov/rigcat/config"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("MissingFileYieldsDefaults", func(t *testing.T) {
		t.Parallel()

		cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))

		require.NoError(t, err)
		assert.Equal(t, config.DefaultCatalogPath, cfg.CatalogPath)
		assert.Equal(t, config.DefaultSnapshotPath, cfg.SnapshotPath)
		assert.Equal(t, config.DefaultTimeoutSecs, cfg.AnalysisTimeoutSecs)
		assert.Empty(t, cfg.Model)
	})

	t.Run("ReadsValuesFromFile", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "config.yaml")
		content := "catalog_path: /var/lib/rigcat/catalog.json\n" +
			"snapshot_path: /srv/snapshot.html\n" +
			"model: gemini-2.5-pro\n" +
			"analysis_timeout_secs: 120\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		cfg, err := config.Load(path)

		require.NoError(t, err)
		assert.Equal(t, "/var/lib/rigcat/catalog.json", cfg.CatalogPath)
		assert.Equal(t, "/srv/snapshot.html", cfg.SnapshotPath)
		assert.Equal(t, "gemini-2.5-pro", cfg.Model)
		assert.Equal(t, 120, cfg.AnalysisTimeoutSecs)
	})

	t.Run("FillsDefaultsForOmittedFields", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("model: gemini-2.5-flash\n"), 0o644))

		cfg, err := config.Load(path)

		require.NoError(t, err)
		assert.Equal(t, "gemini-2.5-flash", cfg.Model)
		assert.Equal(t, config.DefaultCatalogPath, cfg.CatalogPath)
		assert.Equal(t, config.DefaultTimeoutSecs, cfg.AnalysisTimeoutSecs)
	})

	t.Run("MalformedFileIsAnError", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("catalog_path: [broken\n"), 0o644))

		_, err := config.Load(path)
		assert.Error(t, err)
	})
}
