package errutil

import (
	"errors"
	"fmt"
	"io"

	"github.com/xeptore/flaw/v8"
	"gopkg.in/yaml.v3"
)

// Report is the YAML document listing every track that failed during a run.
type Report struct {
	Command  string        `yaml:"command"`
	RunID    string        `yaml:"run_id"`
	Failures []ReportEntry `yaml:"failures"`
}

type ReportEntry struct {
	ID      string `yaml:"id"`
	Kind    string `yaml:"kind"`
	Message string `yaml:"message"`
	Flaw    *Flaw  `yaml:"flaw,omitempty"`
}

type Flaw struct {
	Inner        string        `yaml:"inner"`
	Records      []Record      `yaml:"records"`
	JoinedErrors []JoinedError `yaml:"joined_errors"`
	StackTrace   []StackTrace  `yaml:"stack_trace"`
}

type Record struct {
	Function string         `yaml:"function"`
	Payload  map[string]any `yaml:"payload"`
}

type JoinedError struct {
	Message          string      `yaml:"message"`
	CallerStackTrace *StackTrace `yaml:"caller_stack_trace"`
}

type StackTrace struct {
	File     string `yaml:"file"`
	Line     int    `yaml:"line"`
	Function string `yaml:"function"`
}

// NewReportEntry describes err, expanding it when it carries a flaw.
func NewReportEntry(id, kind string, err error) ReportEntry {
	entry := ReportEntry{ID: id, Kind: kind, Message: err.Error(), Flaw: nil}
	if f := new(flaw.Flaw); errors.As(err, &f) {
		entry.Flaw = fromFlaw(f)
	}
	return entry
}

func fromFlaw(f *flaw.Flaw) *Flaw {
	records := make([]Record, len(f.Records))
	for i, v := range f.Records {
		records[i] = Record{
			Function: v.Function,
			Payload:  v.Payload,
		}
	}

	joinedErrors := make([]JoinedError, len(f.JoinedErrors))
	for i, v := range f.JoinedErrors {
		je := JoinedError{
			Message:          v.Message,
			CallerStackTrace: nil,
		}
		if v.CallerStackTrace != nil {
			je.CallerStackTrace = &StackTrace{
				File:     v.CallerStackTrace.File,
				Line:     v.CallerStackTrace.Line,
				Function: v.CallerStackTrace.Function,
			}
		}
		joinedErrors[i] = je
	}

	stackTraces := make([]StackTrace, len(f.StackTrace))
	for i, v := range f.StackTrace {
		stackTraces[i] = StackTrace{
			File:     v.File,
			Line:     v.Line,
			Function: v.Function,
		}
	}

	return &Flaw{
		Inner:        f.Inner,
		Records:      records,
		JoinedErrors: joinedErrors,
		StackTrace:   stackTraces,
	}
}

func (r Report) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); nil != err {
		flawP := flaw.P{"err_debug_tree": Tree(err).FlawP(), "failures": len(r.Failures)}
		return flaw.From(fmt.Errorf("failed to encode failure report to yaml: %v", err)).Append(flawP)
	}
	if err := enc.Close(); nil != err {
		flawP := flaw.P{"err_debug_tree": Tree(err).FlawP()}
		return flaw.From(fmt.Errorf("failed to flush failure report: %v", err)).Append(flawP)
	}
	return nil
}
