package tagtraum

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/xeptore/flaw/v8"
	"golang.org/x/text/unicode/norm"

	"github.com/xeptore/jamsconv/errutil"
	"github.com/xeptore/jamsconv/must"
)

const identityFields = 4

type Identity struct {
	Artist string
	Title  string
}

// Identities maps track ids to artist and title.
type Identities struct {
	byID      map[string]Identity
	malformed int
}

func (i *Identities) Lookup(id string) (Identity, bool) {
	identity, ok := i.byID[id]
	return identity, ok
}

func (i *Identities) Len() int {
	return len(i.byID)
}

func (i *Identities) Malformed() int {
	return i.malformed
}

func LoadIdentitiesFile(filePath, sep string, keep func(id string) bool, logger zerolog.Logger) (ids *Identities, err error) {
	f, err := os.Open(filePath)
	if nil != err {
		flawP := flaw.P{"err_debug_tree": errutil.Tree(err).FlawP(), "file_path": filePath}
		return nil, flaw.From(fmt.Errorf("failed to open identity table: %v", err)).Append(flawP)
	}
	defer func() {
		if closeErr := f.Close(); nil != closeErr {
			flawP := flaw.P{"err_debug_tree": errutil.Tree(closeErr).FlawP(), "file_path": filePath}
			err = must.JoinClose(err, flaw.From(fmt.Errorf("failed to close identity table: %v", closeErr)).Append(flawP))
		}
	}()

	return LoadIdentities(f, sep, keep, logger)
}

// LoadIdentities reads lines of track id, collection id, artist and title
// separated by sep. Only ids keep accepts are retained so that a huge table
// costs memory proportional to the votes it serves.
func LoadIdentities(r io.Reader, sep string, keep func(id string) bool, logger zerolog.Logger) (*Identities, error) {
	logger = logger.With().Str("module", "identities").Logger()
	logger.Info().Msg("Matching with track identity table")

	ids := &Identities{byID: make(map[string]Identity), malformed: 0}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		tokens := strings.Split(line, sep)
		if len(tokens) != identityFields {
			ids.malformed++
			logger.Warn().Int("line_no", lineNo).Str("line", line).Int("fields", len(tokens)).Err(ErrMalformedLine).Msg("Failed to parse identity table line")
			continue
		}

		id := tokens[0]
		if !keep(id) {
			continue
		}
		ids.byID[id] = Identity{
			Artist: norm.NFC.String(tokens[2]),
			Title:  norm.NFC.String(tokens[3]),
		}
	}
	if err := scanner.Err(); nil != err {
		flawP := flaw.P{"err_debug_tree": errutil.Tree(err).FlawP(), "matched": len(ids.byID)}
		return nil, flaw.From(fmt.Errorf("failed to scan identity table: %v", err)).Append(flawP)
	}

	logger.Info().Int("matched", ids.Len()).Int("malformed", ids.malformed).Msg("Loaded track identities")
	return ids, nil
}
