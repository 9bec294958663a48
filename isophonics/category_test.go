package isophonics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xeptore/jamsconv/config"
	"github.com/xeptore/jamsconv/isophonics"
	"github.com/xeptore/jamsconv/jams"
)

func defaultClassifier(t *testing.T) isophonics.Classifier {
	t.Helper()
	c, err := isophonics.NewClassifier(config.Default().Isophonics.Keywords)
	require.NoError(t, err)
	return c
}

func TestClassify(t *testing.T) {
	t.Parallel()

	c := defaultClassifier(t)
	tests := map[string]isophonics.Category{
		"beat/The Beatles/01_-_Please_Please_Me/01_-_I_Saw_Her_Standing_There.txt": isophonics.Beat,
		"chordlab/Queen/Greatest Hits I/01 Bohemian Rhapsody.lab":                  isophonics.Chord,
		"keylab/Carole King/Tapestry/01 I Feel The Earth Move.lab":                 isophonics.Key,
		"seglab/Zweieck/Zwielicht/01_-_Spiel_Mir_Eine_Alte_Melodie.lab":            isophonics.Segment,
	}
	for p, want := range tests {
		got, err := c.Classify(p)
		require.NoError(t, err, p)
		assert.Equal(t, want, got, p)
	}

	_, err := c.Classify("melody/Artist/track.lab")
	assert.ErrorIs(t, err, isophonics.ErrUnknownCategory)
}

func TestClassifyPriority(t *testing.T) {
	t.Parallel()

	c := defaultClassifier(t)
	got, err := c.Classify("chordlab/Beatles/beat it.lab")
	require.NoError(t, err)
	assert.Equal(t, isophonics.Beat, got)
}

func TestNewClassifierRejectsUnknownCategory(t *testing.T) {
	t.Parallel()

	_, err := isophonics.NewClassifier(map[string]string{"melody": "mel"})
	assert.ErrorIs(t, err, isophonics.ErrUnknownCategory)
}

func TestCategoryNamespace(t *testing.T) {
	t.Parallel()

	assert.Equal(t, jams.NamespaceBeat, isophonics.Beat.Namespace())
	assert.Equal(t, jams.NamespaceChordHarte, isophonics.Chord.Namespace())
	assert.Equal(t, jams.NamespaceKeyMode, isophonics.Key.Namespace())
	assert.Equal(t, jams.NamespaceSegmentIsophonics, isophonics.Segment.Namespace())
}
