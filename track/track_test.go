package track_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xeptore/jamsconv/cache"
	"github.com/xeptore/jamsconv/jams"
	"github.com/xeptore/jamsconv/track"
)

func newRecord(root, id string, duration float64) *track.Record {
	j := jams.New()
	j.FileMetadata.Title = id
	j.FileMetadata.Duration = &duration
	return &track.Record{ID: id, OutPath: filepath.Join(root, id[:1], id+".jams"), JAMS: j}
}

func TestWriteAll(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	dirs := cache.NewDirs()
	defer dirs.Close()
	w := track.NewWriter(dirs, 4, false, zerolog.Nop())

	errBuild := errors.New("build failed")
	jobs := []track.Job{
		{ID: "ok1", Build: func() (*track.Record, error) { return newRecord(root, "ok1", 1), nil }},
		{ID: "bad", Build: func() (*track.Record, error) { return nil, errBuild }},
		{ID: "neg", Build: func() (*track.Record, error) { return newRecord(root, "neg", -1), nil }},
		{ID: "ok2", Build: func() (*track.Record, error) { return newRecord(root, "ok2", 2), nil }},
		{ID: "boom", Build: func() (*track.Record, error) { panic("boom") }},
	}

	result, err := w.WriteAll(context.Background(), jobs)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Written)
	require.Len(t, result.Failures, 3)

	assert.Equal(t, "bad", result.Failures[0].ID)
	assert.ErrorIs(t, result.Failures[0].Err, errBuild)
	assert.Equal(t, "boom", result.Failures[1].ID)
	assert.Equal(t, "neg", result.Failures[2].ID)
	assert.ErrorIs(t, result.Failures[2].Err, jams.ErrInvalid)

	assert.FileExists(t, filepath.Join(root, "o", "ok1.jams"))
	assert.FileExists(t, filepath.Join(root, "o", "ok2.jams"))
	_, err = os.Stat(filepath.Join(root, "n", "neg.jams"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteAllCanceled(t *testing.T) {
	t.Parallel()

	dirs := cache.NewDirs()
	defer dirs.Close()
	w := track.NewWriter(dirs, 1, false, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	root := t.TempDir()
	_, err := w.WriteAll(ctx, []track.Job{
		{ID: "a", Build: func() (*track.Record, error) { return newRecord(root, "a", 1), nil }},
	})
	assert.ErrorIs(t, err, context.Canceled)
}
