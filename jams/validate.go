package jams

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalid is returned when a container breaks a structural rule and must not
// be written.
var ErrInvalid = errors.New("invalid container")

func (j *JAMS) Validate() error {
	if d := j.FileMetadata.Duration; nil != d && !nonNegative(*d) {
		return fmt.Errorf("%w: file duration %v is negative or not a number", ErrInvalid, *d)
	}
	for i, a := range j.Annotations {
		if err := a.validate(); nil != err {
			return fmt.Errorf("%w: annotation %d (%s): %v", ErrInvalid, i, a.Namespace, err)
		}
	}
	return nil
}

func (a *Annotation) validate() error {
	kind, ok := namespaces[a.Namespace]
	if !ok {
		return fmt.Errorf("unknown namespace %q", a.Namespace)
	}
	if !nonNegative(a.Time) {
		return fmt.Errorf("annotation time %v is negative or not a number", a.Time)
	}
	if nil != a.Duration && !nonNegative(*a.Duration) {
		return fmt.Errorf("annotation duration %v is negative or not a number", *a.Duration)
	}

	for i, o := range a.Data {
		switch {
		case !nonNegative(o.Time):
			return fmt.Errorf("observation %d: time %v is negative or not a number", i, o.Time)
		case !nonNegative(o.Duration):
			return fmt.Errorf("observation %d: duration %v is negative or not a number", i, o.Duration)
		case math.IsNaN(o.Confidence) || o.Confidence < 0 || o.Confidence > 1:
			return fmt.Errorf("observation %d: confidence %v is outside [0, 1]", i, o.Confidence)
		}

		switch kind {
		case valueNumber:
			switch v := o.Value.(type) {
			case nil:
			case float64:
				if math.IsNaN(v) || math.IsInf(v, 0) {
					return fmt.Errorf("observation %d: value %v is not a finite number", i, v)
				}
			default:
				return fmt.Errorf("observation %d: value %#v is neither a number nor missing", i, o.Value)
			}
		case valueString:
			if _, ok := o.Value.(string); !ok {
				return fmt.Errorf("observation %d: value %#v is not a string", i, o.Value)
			}
		}
	}
	return nil
}

func nonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
