package isophonics

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/xeptore/jamsconv/jams"
	"github.com/xeptore/jamsconv/log"
)

// ErrMalformedPath is returned for a file that sits too shallow below the
// input root to carry an artist directory.
var ErrMalformedPath = errors.New("malformed path")

// minPathSegments is category/artist/file, the shallowest layout that names an
// artist.
const minPathSegments = 3

// Source is a single annotation file of a track.
type Source struct {
	Path     string
	Category Category
}

// Entry is a partially built track: everything known about it before its
// files are read.
type Entry struct {
	ID      string
	Artist  string
	OutPath string
	Sources []Source
}

// Index groups annotation files by track in first-seen order.
type Index struct {
	entries map[string]*Entry
	order   []string
}

func newIndex() *Index {
	return &Index{entries: make(map[string]*Entry), order: nil}
}

func (idx *Index) Len() int {
	return len(idx.order)
}

func (idx *Index) Get(id string) (*Entry, bool) {
	e, ok := idx.entries[id]
	return e, ok
}

func (idx *Index) Entries() []*Entry {
	return lo.Map(idx.order, func(id string, _ int) *Entry { return idx.entries[id] })
}

type GroupStats struct {
	Files          int
	MalformedPaths int
	Unclassified   int
}

func (s GroupStats) Skipped() int {
	return s.MalformedPaths + s.Unclassified
}

// Grouper walks an Isophonics tree and indexes its annotation files by track.
type Grouper struct {
	root       string
	outRoot    string
	outExt     string
	classifier Classifier
	extensions map[string]int
	logger     zerolog.Logger
}

func NewGrouper(root, outRoot, outExt string, classifier Classifier, extensions map[string]int, logger zerolog.Logger) *Grouper {
	return &Grouper{
		root:       filepath.Clean(root),
		outRoot:    outRoot,
		outExt:     outExt,
		classifier: classifier,
		extensions: extensions,
		logger:     logger.With().Str("module", "grouper").Logger(),
	}
}

// Discover lists the recognized files under the root, extension by extension
// in name order, each within its own depth bound.
func (g *Grouper) Discover() ([]string, error) {
	exts := lo.Keys(g.extensions)
	slices.Sort(exts)

	var out []string
	for _, ext := range exts {
		paths, err := jams.FindWithExtension(g.root, ext, g.extensions[ext])
		if nil != err {
			return nil, err
		}
		g.logger.Debug().Str("ext", ext).Int("files", len(paths)).Msg("Discovered annotation files")
		out = append(out, paths...)
	}
	return out, nil
}

// Build indexes paths. Files that cannot be placed are logged and counted,
// never fatal.
func (g *Grouper) Build(paths []string) (*Index, GroupStats) {
	idx := newIndex()
	stats := GroupStats{Files: len(paths), MalformedPaths: 0, Unclassified: 0}
	for _, p := range paths {
		err := g.add(idx, p)
		switch {
		case nil == err:
		case errors.Is(err, ErrMalformedPath):
			stats.MalformedPaths++
			g.logger.Warn().Str("path", p).Func(log.Flaw(err)).Msg("Skipping file with malformed path")
		case errors.Is(err, ErrUnknownCategory):
			stats.Unclassified++
			g.logger.Warn().Str("path", p).Msg("Skipping file of unknown category")
		default:
			stats.MalformedPaths++
			g.logger.Warn().Str("path", p).Func(log.Flaw(err)).Msg("Skipping file")
		}
	}
	return idx, stats
}

func (g *Grouper) add(idx *Index, p string) error {
	rel, err := filepath.Rel(g.root, p)
	if nil != err {
		return fmt.Errorf("%w: %v", ErrMalformedPath, err)
	}
	rel = filepath.ToSlash(rel)

	parts := strings.Split(rel, "/")
	if len(parts) < minPathSegments {
		return fmt.Errorf("%w: %q has %d segments, want at least %d", ErrMalformedPath, rel, len(parts), minPathSegments)
	}

	category, err := g.classifier.Classify(rel)
	if nil != err {
		return err
	}

	id := jams.Filebase(p)
	entry, ok := idx.entries[id]
	if !ok {
		entry = &Entry{
			ID:      id,
			Artist:  parts[1],
			OutPath: g.outPath(parts[1:]),
			Sources: nil,
		}
		idx.entries[id] = entry
		idx.order = append(idx.order, id)
		g.logger.Info().Str("id", id).Str("out", entry.OutPath).Msg("New track")
	}
	entry.Sources = append(entry.Sources, Source{Path: p, Category: category})
	return nil
}

func (g *Grouper) outPath(parts []string) string {
	p := filepath.Join(append([]string{g.outRoot}, parts...)...)
	return strings.TrimSuffix(p, filepath.Ext(p)) + g.outExt
}
