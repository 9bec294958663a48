package tagtraum

import (
	"github.com/xeptore/jamsconv/jams"
)

// Variant is a release of the tagtraum genre dataset.
type Variant string

const (
	CD1  Variant = "cd1"
	CD2  Variant = "cd2"
	CD2C Variant = "cd2c"
)

// cd1GenreCount is the number of distinct genres in the cd1 release. The rule
// is tied to the published releases: a release with a different genre count
// falls through to cd2 or cd2c.
const cd1GenreCount = 13

// InferVariant identifies the dataset release from the number of distinct
// genres and whether any track carries a minority vote.
func InferVariant(distinctGenres int, hasMinority bool) Variant {
	switch {
	case distinctGenres == cd1GenreCount:
		return CD1
	case hasMinority:
		return CD2
	default:
		return CD2C
	}
}

// Namespace is shared by cd2 and cd2c.
func (v Variant) Namespace() jams.Namespace {
	if v == CD1 {
		return jams.NamespaceTagtraumCD1
	}
	return jams.NamespaceTagtraumCD2
}

// MajorityConfidence is the weight of the first of two votes. cd1 merges three
// sources, cd2 and cd2c merge two.
func (v Variant) MajorityConfidence() float64 {
	if v == CD1 {
		return 2.0 / 3.0
	}
	return 1.0 / 2.0
}

func (v Variant) MinorityConfidence() float64 {
	return 1.0 - v.MajorityConfidence()
}

// Confidences returns the confidence of each vote of a track with n votes.
func (v Variant) Confidences(n int) []float64 {
	switch n {
	case 1:
		return []float64{1.0}
	case 2:
		return []float64{v.MajorityConfidence(), v.MinorityConfidence()}
	default:
		return nil
	}
}

func (v Variant) Metadata() jams.AnnotationMetadata {
	corpus := "msd tagtraum " + string(v)
	dataSource := "beaTunes, Last.fm"
	annotator := "Last.fm users, beaTunes users"
	if v == CD1 {
		dataSource = "Top-MAGD, beaTunes, Last.fm"
		annotator = "All Music Guide, Last.fm users, beaTunes users"
	}
	return jams.AnnotationMetadata{
		Curator: jams.Curator{
			Name:  "Hendrik Schreiber",
			Email: "hs@tagtraum.com",
		},
		Annotator:       jams.Sandbox{"name": annotator},
		Version:         "1.0",
		Corpus:          corpus,
		AnnotationTools: "",
		AnnotationRules: "",
		Validation:      "Multiple data sources. Majority voting.",
		DataSource:      dataSource,
	}
}
