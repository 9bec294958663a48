package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xeptore/jamsconv/config"
)

func TestFromString(t *testing.T) {
	t.Parallel()

	t.Run("empty document keeps defaults", func(t *testing.T) {
		t.Parallel()

		cfg, err := config.FromString("")
		require.NoError(t, err)
		assert.Equal(t, config.Default(), cfg)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Parallel()

		cfg, err := config.FromString(`
output_extension: .json
workers: 2
indent: true
tagtraum:
  identity_separator: "|"
`)
		require.NoError(t, err)
		assert.Equal(t, ".json", cfg.OutputExtension)
		assert.Equal(t, 2, cfg.Workers)
		assert.True(t, cfg.Indent)
		assert.Equal(t, "|", cfg.Tagtraum.IdentitySeparator)
		assert.Equal(t, "chordlab", cfg.Isophonics.Keywords["chord"])
		assert.Equal(t, 5, cfg.Isophonics.Extensions[".lab"])
	})

	t.Run("maps replace defaults", func(t *testing.T) {
		t.Parallel()

		cfg, err := config.FromString(`
isophonics:
  keywords:
    chord: chords
  extensions:
    .lab: 3
`)
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"chord": "chords"}, cfg.Isophonics.Keywords)
		assert.Equal(t, map[string]int{".lab": 3}, cfg.Isophonics.Extensions)
	})

	t.Run("omitted maps keep defaults", func(t *testing.T) {
		t.Parallel()

		cfg, err := config.FromString("isophonics:\n  keywords:\n    beat: beats\n")
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"beat": "beats"}, cfg.Isophonics.Keywords)
		assert.Equal(t, config.Default().Isophonics.Extensions, cfg.Isophonics.Extensions)
	})

	t.Run("invalid", func(t *testing.T) {
		t.Parallel()

		tests := map[string]string{
			"zero workers":      "workers: 0",
			"bad extension":     "output_extension: jams",
			"unknown category":  "isophonics:\n  keywords:\n    melody: mel",
			"empty keyword":     "isophonics:\n  keywords:\n    beat: \"\"",
			"bad depth":         "isophonics:\n  extensions:\n    .lab: 0",
			"empty separator":   "tagtraum:\n  identity_separator: \"\"",
			"malformed yaml":    "workers: [",
			"undotted lab type": "isophonics:\n  extensions:\n    lab: 3",
			"empty keyword map": "isophonics:\n  keywords: {}",
		}
		for name, doc := range tests {
			t.Run(name, func(t *testing.T) {
				t.Parallel()
				_, err := config.FromString(doc)
				assert.Error(t, err)
			})
		}
	})
}

func TestFromFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	p := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte("workers: 3\n"), 0o0600))

	cfg, err := config.FromFile(p)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Workers)

	_, err = config.FromFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
