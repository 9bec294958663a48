package isophonics

import (
	"math"
	"strconv"
	"strings"

	"github.com/xeptore/jamsconv/jams"
)

// chordFixes rewrites chord spellings the corpus uses that are not valid
// Harte syntax.
var chordFixes = map[string]string{
	"E:4":    "E:sus4",
	"Db:6":   "Db:maj6",
	"F#min7": "F#:min7",
	"B:7sus": "B:maj7",
	"Db:6/2": "Db:maj6/2",
	"Ab:6":   "Ab:maj6",
	"F:6":    "F:maj6",
	"D:6":    "D:maj6",
	"G:6":    "G:maj6",
	"A:6":    "A:maj6",
	"E:sus":  "E",
	"E:7sus": "E:maj7",
}

var keyFixes = map[string]string{
	"C#:modal": "C#",
}

const silence = "silence"

// Normalize applies the corrections of category c to a in place and returns
// how many observations were dropped.
func Normalize(c Category, a *jams.Annotation) int {
	switch c {
	case Chord:
		return FixChords(a)
	case Key:
		return FixKeys(a)
	case Beat:
		FixBeats(a)
		return 0
	case Segment:
		return FixSegments(a)
	default:
		return 0
	}
}

func FixChords(a *jams.Annotation) int {
	relabel(a, chordFixes)
	return dropUnlabeled(a) + dropEmptyRanges(a)
}

func FixKeys(a *jams.Annotation) int {
	relabel(a, keyFixes)
	dropped := dropUnlabeled(a) + dropEmptyRanges(a)
	dropped += a.Filter(func(o jams.Observation) bool {
		label, ok := o.Value.(string)
		return !ok || !strings.EqualFold(label, silence)
	})
	return dropped
}

// FixBeats turns every beat value into a float64 beat position, or nil when
// the value is not a finite number.
func FixBeats(a *jams.Annotation) {
	for i := range a.Data {
		a.Data[i].Value = beatPosition(a.Data[i].Value)
	}
}

func FixSegments(a *jams.Annotation) int {
	return dropUnlabeled(a) + dropEmptyRanges(a)
}

func relabel(a *jams.Annotation, fixes map[string]string) {
	for i, o := range a.Data {
		label, ok := o.Value.(string)
		if !ok {
			continue
		}
		if fixed, ok := fixes[label]; ok {
			a.Data[i].Value = fixed
		}
	}
}

// dropUnlabeled removes rows that carried timings but no label column.
func dropUnlabeled(a *jams.Annotation) int {
	return a.Filter(func(o jams.Observation) bool {
		_, ok := o.Value.(string)
		return ok
	})
}

func dropEmptyRanges(a *jams.Annotation) int {
	return a.Filter(func(o jams.Observation) bool { return o.Duration > 0 })
}

func beatPosition(v any) any {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if nil != err {
			return nil
		}
		f = parsed
	default:
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return f
}
