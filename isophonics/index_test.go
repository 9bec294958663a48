package isophonics_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xeptore/jamsconv/config"
	"github.com/xeptore/jamsconv/isophonics"
)

func writeFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o0755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o0600))
	return p
}

func newGrouper(t *testing.T, root, outRoot string) *isophonics.Grouper {
	t.Helper()
	cfg := config.Default()
	return isophonics.NewGrouper(root, outRoot, cfg.OutputExtension, defaultClassifier(t), cfg.Isophonics.Extensions, zerolog.Nop())
}

func TestGrouperDiscover(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "chordlab/Queen/Album/01 Song.lab", "")
	writeFile(t, root, "chordlab/Queen/Album/Disc/Deeper/02 Song.lab", "")
	writeFile(t, root, "beat/Queen/Album/01 Song.txt", "")
	writeFile(t, root, "beat/Queen/Album/Disc/02 Song.txt", "")
	writeFile(t, root, "beat/Queen/Album/readme.md", "")
	writeFile(t, root, "chordlab/Queen/Album/._01 Song.lab", "\x00\x05\x16\x07")
	writeFile(t, root, "chordlab/.Trashes/Queen/03 Song.lab", "")

	paths, err := newGrouper(t, root, t.TempDir()).Discover()
	require.NoError(t, err)

	rel := make([]string, len(paths))
	for i, p := range paths {
		r, err := filepath.Rel(root, p)
		require.NoError(t, err)
		rel[i] = filepath.ToSlash(r)
	}
	assert.Equal(t, []string{"chordlab/Queen/Album/01 Song.lab", "beat/Queen/Album/01 Song.txt"}, rel)
}

func TestGrouperBuild(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	outRoot := t.TempDir()
	paths := []string{
		writeFile(t, root, "chordlab/Queen/Album/01 Song.lab", ""),
		writeFile(t, root, "seglab/Queen/Album/01 Song.lab", ""),
		writeFile(t, root, "keylab/Queen/02 Other.lab", ""),
		writeFile(t, root, "melody/Queen/Album/01 Song.lab", ""),
		writeFile(t, root, "chordlab/03 Loose.lab", ""),
		writeFile(t, root, "beat/Queen/Album/01 Song.txt", ""),
	}

	idx, stats := newGrouper(t, root, outRoot).Build(paths)
	assert.Equal(t, 6, stats.Files)
	assert.Equal(t, 1, stats.Unclassified)
	assert.Equal(t, 1, stats.MalformedPaths)
	assert.Equal(t, 2, stats.Skipped())
	require.Equal(t, 2, idx.Len())

	entries := idx.Entries()
	assert.Equal(t, "01 Song", entries[0].ID)
	assert.Equal(t, "02 Other", entries[1].ID)

	song, ok := idx.Get("01 Song")
	require.True(t, ok)
	assert.Equal(t, "Queen", song.Artist)
	assert.Equal(t, filepath.Join(outRoot, "Queen", "Album", "01 Song.jams"), song.OutPath)
	require.Len(t, song.Sources, 3)
	assert.Equal(t, isophonics.Chord, song.Sources[0].Category)
	assert.Equal(t, isophonics.Segment, song.Sources[1].Category)
	assert.Equal(t, isophonics.Beat, song.Sources[2].Category)

	other, ok := idx.Get("02 Other")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(outRoot, "Queen", "02 Other.jams"), other.OutPath)
}
