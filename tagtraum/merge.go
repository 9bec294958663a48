package tagtraum

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/xeptore/jamsconv/jams"
	"github.com/xeptore/jamsconv/track"
)

// ErrMissingIdentity is returned for a voted track that the identity table
// does not know, which means the two input files do not belong together.
var ErrMissingIdentity = errors.New("missing identity")

const msdIDKey = "msd_id"

// Merger combines votes and identities into finalized tracks.
type Merger struct {
	votes      *Votes
	identities *Identities
	variant    Variant
	outRoot    string
	outExt     string
}

func NewMerger(votes *Votes, identities *Identities, outRoot, outExt string) *Merger {
	return &Merger{
		votes:      votes,
		identities: identities,
		variant:    votes.Variant(),
		outRoot:    outRoot,
		outExt:     outExt,
	}
}

func (m *Merger) Variant() Variant {
	return m.variant
}

// Merge builds the track of id with one observation per vote, majority first.
func (m *Merger) Merge(id string) (*track.Record, error) {
	genres, ok := m.votes.Get(id)
	if !ok {
		return nil, fmt.Errorf("track %q has no votes", id)
	}
	identity, ok := m.identities.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: track %q", ErrMissingIdentity, id)
	}

	j := jams.New()
	duration := 0.0
	j.FileMetadata.Artist = identity.Artist
	j.FileMetadata.Title = identity.Title
	j.FileMetadata.Duration = &duration
	j.FileMetadata.Identifiers = jams.Sandbox{msdIDKey: id}

	annot := jams.NewAnnotation(m.variant.Namespace())
	annot.Metadata = m.variant.Metadata()
	for i, confidence := range m.variant.Confidences(len(genres)) {
		annot.Append(jams.Observation{Time: 0, Duration: 0, Value: genres[i], Confidence: confidence})
	}
	j.Annotations = append(j.Annotations, annot)

	return &track.Record{ID: id, OutPath: ShardPath(m.outRoot, id, m.outExt), JAMS: j}, nil
}

// Jobs returns one writer job per voted track, in dataset order.
func (m *Merger) Jobs() []track.Job {
	ids := m.votes.IDs()
	jobs := make([]track.Job, len(ids))
	for i, id := range ids {
		jobs[i] = track.Job{
			ID:    id,
			Build: func() (*track.Record, error) { return m.Merge(id) },
		}
	}
	return jobs
}

func (m *Merger) LogVariant(logger zerolog.Logger) {
	logger.Info().
		Str("variant", string(m.variant)).
		Str("namespace", string(m.variant.Namespace())).
		Float64("majority_confidence", m.variant.MajorityConfidence()).
		Float64("minority_confidence", m.variant.MinorityConfidence()).
		Msg("Detected dataset variant")
}

// ShardPath spreads outputs over three nested directories named after the
// third, fourth and fifth characters of the id.
func ShardPath(outRoot, id, ext string) string {
	parts := []string{outRoot}
	for i := 2; i < 5 && i < len(id); i++ {
		parts = append(parts, id[i:i+1])
	}
	parts = append(parts, id+ext)
	return filepath.Join(parts...)
}
