package isophonics

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/xeptore/jamsconv/jams"
	"github.com/xeptore/jamsconv/log"
	"github.com/xeptore/jamsconv/track"
)

// ErrNoAnnotations is returned for a track none of whose source files could be
// read.
var ErrNoAnnotations = errors.New("no readable annotations")

func annotationMetadata() jams.AnnotationMetadata {
	return jams.AnnotationMetadata{
		Curator: jams.Curator{
			Name:  "Matthias Mauch",
			Email: "m.mauch@qmul.ac.uk",
		},
		Annotator:       jams.Sandbox{},
		Version:         "1.0",
		Corpus:          "Isophonics",
		AnnotationTools: "",
		AnnotationRules: "",
		Validation:      "",
		DataSource:      "",
	}
}

// Finalize reads every source file of e, normalizes it and returns the
// complete track. A source that cannot be read is logged and left out; when
// none can be read the track fails with ErrNoAnnotations.
func (e *Entry) Finalize(logger zerolog.Logger) (*track.Record, error) {
	logger = logger.With().Str("module", "finalize").Str("id", e.ID).Logger()

	j := jams.New()
	j.FileMetadata.Artist = e.Artist
	j.FileMetadata.Title = e.ID

	for _, src := range e.Sources {
		annot, err := importSource(src)
		if nil != err {
			logger.Warn().Str("path", src.Path).Stringer("category", src.Category).Func(log.Flaw(err)).Msg("Skipping unreadable annotation file")
			continue
		}

		if dropped := Normalize(src.Category, annot); dropped > 0 {
			logger.Debug().Str("path", src.Path).Int("dropped", dropped).Msg("Dropped degenerate observations")
		}
		annot.Metadata = annotationMetadata()
		j.Annotations = append(j.Annotations, annot)

		if !src.Category.spansTrack() {
			continue
		}
		end, err := DeriveDuration(annot)
		switch {
		case nil != err:
			logger.Warn().Str("path", src.Path).Err(err).Msg("Cannot derive duration from annotation")
		case nil == end:
		case nil == j.FileMetadata.Duration || *end > *j.FileMetadata.Duration:
			j.FileMetadata.Duration = end
		}
	}

	if len(j.Annotations) == 0 {
		return nil, fmt.Errorf("%w: track %q from %d source files", ErrNoAnnotations, e.ID, len(e.Sources))
	}

	return &track.Record{ID: e.ID, OutPath: e.OutPath, JAMS: j}, nil
}

// importSource reads a lab file. Beat files are split on whitespace first and
// on tabs when that leaves a non-numeric timing column.
func importSource(src Source) (*jams.Annotation, error) {
	ns := src.Category.Namespace()
	annot, err := jams.ImportLabFile(ns, src.Path, jams.Whitespace)
	if src.Category == Beat && errors.Is(err, jams.ErrNonNumericColumn) {
		return jams.ImportLabFile(ns, src.Path, jams.Tabs)
	}
	return annot, err
}

// Jobs turns every indexed track into a writer job.
func (idx *Index) Jobs(logger zerolog.Logger) []track.Job {
	entries := idx.Entries()
	jobs := make([]track.Job, len(entries))
	for i, e := range entries {
		jobs[i] = track.Job{
			ID:    e.ID,
			Build: func() (*track.Record, error) { return e.Finalize(logger) },
		}
	}
	return jobs
}
