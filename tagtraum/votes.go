package tagtraum

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/xeptore/flaw/v8"
	"golang.org/x/text/unicode/norm"

	"github.com/xeptore/jamsconv/errutil"
	"github.com/xeptore/jamsconv/must"
)

// ErrMalformedLine is returned for a data line with an unexpected number of
// fields.
var ErrMalformedLine = errors.New("malformed line")

const commentMarker = "#"

// Votes holds the genre votes of a tagtraum dataset file, majority first.
type Votes struct {
	genres      []string
	hasMinority bool
	ids         []string
	byID        map[string][]string
	malformed   int
}

// Genres returns the distinct genres in first-seen order.
func (v *Votes) Genres() []string {
	return v.genres
}

func (v *Votes) HasMinority() bool {
	return v.hasMinority
}

// IDs returns the track ids in first-seen order.
func (v *Votes) IDs() []string {
	return v.ids
}

func (v *Votes) Get(id string) ([]string, bool) {
	genres, ok := v.byID[id]
	return genres, ok
}

func (v *Votes) Contains(id string) bool {
	_, ok := v.byID[id]
	return ok
}

func (v *Votes) Len() int {
	return len(v.ids)
}

// Malformed reports how many lines were skipped.
func (v *Votes) Malformed() int {
	return v.malformed
}

func (v *Votes) Variant() Variant {
	return InferVariant(len(v.genres), v.hasMinority)
}

func LoadVotesFile(filePath string, logger zerolog.Logger) (v *Votes, err error) {
	f, err := os.Open(filePath)
	if nil != err {
		flawP := flaw.P{"err_debug_tree": errutil.Tree(err).FlawP(), "file_path": filePath}
		return nil, flaw.From(fmt.Errorf("failed to open tagtraum dataset: %v", err)).Append(flawP)
	}
	defer func() {
		if closeErr := f.Close(); nil != closeErr {
			flawP := flaw.P{"err_debug_tree": errutil.Tree(closeErr).FlawP(), "file_path": filePath}
			err = must.JoinClose(err, flaw.From(fmt.Errorf("failed to close tagtraum dataset: %v", closeErr)).Append(flawP))
		}
	}()

	return LoadVotes(f, logger)
}

// LoadVotes reads a tab-separated tagtraum dataset. Lines starting with # are
// comments; a line with two fields is a single vote and a line with three
// fields a majority and a minority vote. Any other line is logged and skipped.
func LoadVotes(r io.Reader, logger zerolog.Logger) (*Votes, error) {
	logger = logger.With().Str("module", "votes").Logger()
	logger.Info().Msg("Loading tagtraum dataset")

	v := &Votes{
		genres:      nil,
		hasMinority: false,
		ids:         nil,
		byID:        make(map[string][]string),
		malformed:   0,
	}
	seen := make(map[string]struct{})

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := scanner.Text()
		if strings.HasPrefix(line, commentMarker) || strings.TrimSpace(line) == "" {
			continue
		}

		tokens := strings.Split(strings.TrimSpace(line), "\t")
		var genres []string
		switch len(tokens) {
		case 2:
			genres = []string{norm.NFC.String(tokens[1])}
		case 3:
			genres = []string{norm.NFC.String(tokens[1]), norm.NFC.String(strings.TrimSpace(tokens[2]))}
			v.hasMinority = true
		default:
			v.malformed++
			logger.Warn().Int("line_no", lineNo).Str("line", line).Int("fields", len(tokens)).Err(ErrMalformedLine).Msg("Failed to parse tagtraum dataset line")
			continue
		}

		id := tokens[0]
		if !v.Contains(id) {
			v.ids = append(v.ids, id)
		}
		v.byID[id] = genres
		for _, g := range genres {
			if _, ok := seen[g]; !ok {
				seen[g] = struct{}{}
				v.genres = append(v.genres, g)
			}
		}
	}
	if err := scanner.Err(); nil != err {
		flawP := flaw.P{"err_debug_tree": errutil.Tree(err).FlawP(), "loaded": len(v.ids)}
		return nil, flaw.From(fmt.Errorf("failed to scan tagtraum dataset: %v", err)).Append(flawP)
	}

	logger.Info().
		Int("items", v.Len()).
		Int("genres", len(v.genres)).
		Bool("has_minority", v.hasMinority).
		Int("malformed", v.malformed).
		Int("two_vote_items", lo.CountBy(v.ids, func(id string) bool { return len(v.byID[id]) == 2 })).
		Msg("Loaded tagtraum dataset")
	return v, nil
}
