package track

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/xeptore/jamsconv/cache"
	"github.com/xeptore/jamsconv/errutil"
	"github.com/xeptore/jamsconv/jams"
	"github.com/xeptore/jamsconv/log"
)

// ErrNoInput is returned when a run finds nothing to convert.
var ErrNoInput = errors.New("no input")

// Record is a finalized track ready to be written.
type Record struct {
	ID      string
	OutPath string
	JAMS    *jams.JAMS
}

// Job builds one Record. It runs on a worker goroutine that exclusively owns
// the record it returns.
type Job struct {
	ID    string
	Build func() (*Record, error)
}

type Failure struct {
	ID  string
	Err error
}

type Result struct {
	Written  int
	Failures []Failure
}

type Writer struct {
	dirs    *cache.Dirs
	workers int
	indent  bool
	logger  zerolog.Logger
}

func NewWriter(dirs *cache.Dirs, workers int, indent bool, logger zerolog.Logger) *Writer {
	return &Writer{
		dirs:    dirs,
		workers: workers,
		indent:  indent,
		logger:  logger.With().Str("module", "writer").Logger(),
	}
}

// WriteAll builds and saves every job on a bounded pool of workers. A failing
// job is recorded in the result and never stops the others; only context
// cancellation aborts the run.
func (w *Writer) WriteAll(ctx context.Context, jobs []Job) (*Result, error) {
	var (
		mux    sync.Mutex
		result = &Result{Written: 0, Failures: nil}
	)

	wg, wgCtx := errgroup.WithContext(ctx)
	wg.SetLimit(w.workers)

	for _, job := range jobs {
		wg.Go(func() error {
			if errutil.IsContext(wgCtx) {
				return wgCtx.Err()
			}

			err := w.write(job)

			mux.Lock()
			defer mux.Unlock()
			if nil != err {
				result.Failures = append(result.Failures, Failure{ID: job.ID, Err: err})
				return nil
			}
			result.Written++
			return nil
		})
	}

	err := wg.Wait()
	slices.SortFunc(result.Failures, func(a, b Failure) int { return strings.Compare(a.ID, b.ID) })
	if nil != err {
		return result, err
	}
	return result, nil
}

func (w *Writer) write(job Job) (err error) {
	defer func() {
		if r := recover(); nil != r {
			w.logger.Error().Str("id", job.ID).Func(log.Recovered(r)).Msg("Track conversion panicked")
			err = fmt.Errorf("track conversion panicked: %v", r)
		}
	}()

	rec, err := job.Build()
	if nil != err {
		w.logger.Error().Str("id", job.ID).Func(log.Flaw(err)).Msg("Failed to build track")
		return err
	}

	if err := w.dirs.Ensure(filepath.Dir(rec.OutPath)); nil != err {
		w.logger.Error().Str("id", job.ID).Str("path", rec.OutPath).Func(log.Flaw(err)).Msg("Failed to prepare output directory")
		return err
	}

	if err := rec.JAMS.Save(rec.OutPath, w.indent); nil != err {
		w.logger.Error().Str("id", job.ID).Str("path", rec.OutPath).Func(log.Flaw(err)).Msg("Failed to save track")
		return err
	}

	w.logger.Debug().Str("id", job.ID).Str("path", rec.OutPath).Msg("Track saved")
	return nil
}
