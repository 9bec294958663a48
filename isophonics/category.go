package isophonics

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xeptore/jamsconv/jams"
)

// ErrUnknownCategory is returned for a file whose path contains none of the
// configured category keywords.
var ErrUnknownCategory = errors.New("unknown category")

type Category int

const (
	Beat Category = iota + 1
	Chord
	Key
	Segment
)

// Categories lists every category in classification priority order.
var Categories = []Category{Beat, Chord, Key, Segment}

func (c Category) String() string {
	switch c {
	case Beat:
		return "beat"
	case Chord:
		return "chord"
	case Key:
		return "key"
	case Segment:
		return "segment"
	default:
		return fmt.Sprintf("Category(%d)", int(c))
	}
}

func (c Category) Namespace() jams.Namespace {
	switch c {
	case Beat:
		return jams.NamespaceBeat
	case Chord:
		return jams.NamespaceChordHarte
	case Key:
		return jams.NamespaceKeyMode
	case Segment:
		return jams.NamespaceSegmentIsophonics
	default:
		panic(fmt.Sprintf("no namespace for %s", c))
	}
}

// spansTrack reports whether annotations of c are expected to cover the
// whole recording.
func (c Category) spansTrack() bool {
	return c == Chord || c == Segment
}

func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if c.String() == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

type keyword struct {
	category Category
	fragment string
}

// Classifier decides the category of a file from the path fragments that
// name each category's directory.
type Classifier struct {
	keywords []keyword
}

// NewClassifier builds a classifier from category names to path fragments.
func NewClassifier(keywords map[string]string) (Classifier, error) {
	byCategory := make(map[Category]string, len(keywords))
	for name, fragment := range keywords {
		c, err := ParseCategory(name)
		if nil != err {
			return Classifier{}, err
		}
		if fragment == "" {
			return Classifier{}, fmt.Errorf("empty keyword for category %s", c)
		}
		byCategory[c] = fragment
	}

	out := Classifier{keywords: make([]keyword, 0, len(byCategory))}
	for _, c := range Categories {
		if fragment, ok := byCategory[c]; ok {
			out.keywords = append(out.keywords, keyword{category: c, fragment: fragment})
		}
	}
	return out, nil
}

// Classify returns the first category, in Categories order, whose keyword
// occurs in relPath.
func (c Classifier) Classify(relPath string) (Category, error) {
	for _, k := range c.keywords {
		if strings.Contains(relPath, k.fragment) {
			return k.category, nil
		}
	}
	return 0, ErrUnknownCategory
}
