package isophonics

import (
	"errors"

	"github.com/xeptore/jamsconv/jams"
)

// ErrUnorderedEvents is returned when an annotation's observations are not
// sorted by onset time, in which case its last observation says nothing about
// where the track ends.
var ErrUnorderedEvents = errors.New("observations are not time-ordered")

// DeriveDuration returns the end of a's last observation in seconds. An empty
// annotation yields nil, never zero.
func DeriveDuration(a *jams.Annotation) (*float64, error) {
	if len(a.Data) == 0 {
		return nil, nil
	}
	for i := 1; i < len(a.Data); i++ {
		if a.Data[i].Time < a.Data[i-1].Time {
			return nil, ErrUnorderedEvents
		}
	}
	last := a.Data[len(a.Data)-1]
	end := last.Time + last.Duration
	return &end, nil
}
