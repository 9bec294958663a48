package jams

const SchemaVersion = "0.3.4"

type Namespace string

const (
	NamespaceBeat              Namespace = "beat"
	NamespaceChordHarte        Namespace = "chord_harte"
	NamespaceKeyMode           Namespace = "key_mode"
	NamespaceSegmentIsophonics Namespace = "segment_isophonics"
	NamespaceTagtraumCD1       Namespace = "tag_msd_tagtraum_cd1"
	NamespaceTagtraumCD2       Namespace = "tag_msd_tagtraum_cd2"
)

type valueKind int

const (
	valueNumber valueKind = iota + 1
	valueString
)

var namespaces = map[Namespace]valueKind{
	NamespaceBeat:              valueNumber,
	NamespaceChordHarte:        valueString,
	NamespaceKeyMode:           valueString,
	NamespaceSegmentIsophonics: valueString,
	NamespaceTagtraumCD1:       valueString,
	NamespaceTagtraumCD2:       valueString,
}

func (ns Namespace) Known() bool {
	_, ok := namespaces[ns]
	return ok
}

// Sandbox holds arbitrary, unvalidated key/value data.
type Sandbox map[string]any

type Curator struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AnnotationMetadata is the provenance block attached to every annotation.
type AnnotationMetadata struct {
	Curator         Curator `json:"curator"`
	Annotator       Sandbox `json:"annotator"`
	Version         string  `json:"version"`
	Corpus          string  `json:"corpus"`
	AnnotationTools string  `json:"annotation_tools"`
	AnnotationRules string  `json:"annotation_rules"`
	Validation      string  `json:"validation"`
	DataSource      string  `json:"data_source"`
}

// Observation is a single timed event. Value is a string for label namespaces,
// a float64 for beat positions, and nil when the value is missing.
type Observation struct {
	Time       float64 `json:"time"`
	Duration   float64 `json:"duration"`
	Value      any     `json:"value"`
	Confidence float64 `json:"confidence"`
}

type Annotation struct {
	Namespace Namespace          `json:"namespace"`
	Metadata  AnnotationMetadata `json:"annotation_metadata"`
	Data      []Observation      `json:"data"`
	Sandbox   Sandbox            `json:"sandbox"`
	Time      float64            `json:"time"`
	Duration  *float64           `json:"duration"`
}

func NewAnnotation(ns Namespace) *Annotation {
	return &Annotation{
		Namespace: ns,
		Metadata:  AnnotationMetadata{Annotator: Sandbox{}},
		Data:      make([]Observation, 0),
		Sandbox:   Sandbox{},
		Time:      0,
		Duration:  nil,
	}
}

func (a *Annotation) Append(o Observation) {
	a.Data = append(a.Data, o)
}

// Filter keeps the observations keep reports true for, preserving order, and
// returns how many were dropped.
func (a *Annotation) Filter(keep func(o Observation) bool) int {
	kept := a.Data[:0]
	for _, o := range a.Data {
		if keep(o) {
			kept = append(kept, o)
		}
	}
	dropped := len(a.Data) - len(kept)
	clear(a.Data[len(kept):])
	a.Data = kept
	return dropped
}

type FileMetadata struct {
	Title       string   `json:"title"`
	Artist      string   `json:"artist"`
	Release     string   `json:"release"`
	Duration    *float64 `json:"duration"`
	Identifiers Sandbox  `json:"identifiers"`
	JAMSVersion string   `json:"jams_version"`
}

// JAMS is the top-level annotation container of a single track.
type JAMS struct {
	Annotations  []*Annotation `json:"annotations"`
	FileMetadata FileMetadata  `json:"file_metadata"`
	Sandbox      Sandbox       `json:"sandbox"`
}

func New() *JAMS {
	return &JAMS{
		Annotations: make([]*Annotation, 0, 4),
		FileMetadata: FileMetadata{
			Identifiers: Sandbox{},
			JAMSVersion: SchemaVersion,
		},
		Sandbox: Sandbox{},
	}
}

// Search returns the annotations of the given namespace in container order.
func (j *JAMS) Search(ns Namespace) []*Annotation {
	var out []*Annotation
	for _, a := range j.Annotations {
		if a.Namespace == ns {
			out = append(out, a)
		}
	}
	return out
}
