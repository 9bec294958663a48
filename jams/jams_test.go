package jams_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/xeptore/jamsconv/jams"
)

func validContainer() *jams.JAMS {
	j := jams.New()
	duration := 12.5
	j.FileMetadata.Title = "Song"
	j.FileMetadata.Artist = "Artist"
	j.FileMetadata.Duration = &duration

	chords := jams.NewAnnotation(jams.NamespaceChordHarte)
	chords.Append(jams.Observation{Time: 0, Duration: 12.5, Value: "C:maj", Confidence: 1})
	beats := jams.NewAnnotation(jams.NamespaceBeat)
	beats.Append(jams.Observation{Time: 0.5, Duration: 0.5, Value: 1.0, Confidence: 1})
	beats.Append(jams.Observation{Time: 1.0, Duration: 0, Value: nil, Confidence: 1})
	j.Annotations = append(j.Annotations, chords, beats)
	return j
}

func TestValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, validContainer().Validate())

	tests := map[string]func(j *jams.JAMS){
		"negative file duration": func(j *jams.JAMS) {
			d := -1.0
			j.FileMetadata.Duration = &d
		},
		"unknown namespace": func(j *jams.JAMS) { j.Annotations[0].Namespace = "melody" },
		"negative observation duration": func(j *jams.JAMS) {
			j.Annotations[0].Data[0].Duration = -0.1
		},
		"nan time":             func(j *jams.JAMS) { j.Annotations[0].Data[0].Time = math.NaN() },
		"confidence too large": func(j *jams.JAMS) { j.Annotations[0].Data[0].Confidence = 1.5 },
		"string beat":          func(j *jams.JAMS) { j.Annotations[1].Data[0].Value = "1" },
		"numeric chord":        func(j *jams.JAMS) { j.Annotations[0].Data[0].Value = 1.0 },
		"infinite beat":        func(j *jams.JAMS) { j.Annotations[1].Data[0].Value = math.Inf(1) },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			j := validContainer()
			mutate(j)
			assert.ErrorIs(t, j.Validate(), jams.ErrInvalid)
		})
	}
}

func TestAnnotationFilter(t *testing.T) {
	t.Parallel()

	a := jams.NewAnnotation(jams.NamespaceSegmentIsophonics)
	for i := range 5 {
		a.Append(jams.Observation{Time: float64(i), Duration: float64(i % 2), Value: "x", Confidence: 1})
	}
	dropped := a.Filter(func(o jams.Observation) bool { return o.Duration > 0 })
	assert.Equal(t, 3, dropped)
	require.Len(t, a.Data, 2)
	assert.Equal(t, 1.0, a.Data[0].Time)
	assert.Equal(t, 3.0, a.Data[1].Time)
}

func TestSaveLoad(t *testing.T) {
	t.Parallel()

	p := filepath.Join(t.TempDir(), "song.jams")
	require.NoError(t, validContainer().Save(p, false))

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, jams.SchemaVersion, gjson.GetBytes(b, "file_metadata.jams_version").String())
	assert.Equal(t, gjson.Null, gjson.GetBytes(b, "annotations.1.data.1.value").Type)
	assert.Equal(t, 1.0, gjson.GetBytes(b, "annotations.1.data.0.value").Float())

	loaded, err := jams.Load(p)
	require.NoError(t, err)
	assert.Equal(t, "Artist", loaded.FileMetadata.Artist)
	require.Len(t, loaded.Search(jams.NamespaceBeat), 1)
	assert.Nil(t, loaded.Search(jams.NamespaceBeat)[0].Data[1].Value)
	require.NoError(t, loaded.Validate())
}

func TestSaveRejectsInvalid(t *testing.T) {
	t.Parallel()

	j := validContainer()
	j.Annotations[0].Data[0].Duration = -1

	p := filepath.Join(t.TempDir(), "song.jams")
	assert.ErrorIs(t, j.Save(p, true), jams.ErrInvalid)
	assert.NoFileExists(t, p)
}

func TestFindWithExtension(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	for _, rel := range []string{"a.lab", "x/b.lab", "x/y/c.lab", "x/y/z/d.lab", "x/e.txt", "._a.lab", "x/._b.lab", ".cache/f.lab"} {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o0755))
		require.NoError(t, os.WriteFile(p, nil, 0o0600))
	}

	found, err := jams.FindWithExtension(root, "lab", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a.lab"),
		filepath.Join(root, "x", "b.lab"),
		filepath.Join(root, "x", "y", "c.lab"),
	}, found)
}

func TestFilebase(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "01 Song", jams.Filebase("/data/chordlab/Queen/01 Song.lab"))
	assert.Equal(t, "track.v2", jams.Filebase("track.v2.txt"))
}
