package jams

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xeptore/flaw/v8"

	"github.com/xeptore/jamsconv/errutil"
)

// ErrNonNumericColumn is returned when a time or end-time column of a lab
// file holds a value that is not a number.
var ErrNonNumericColumn = errors.New("non-numeric timing column")

type Separator int

const (
	// Whitespace splits rows on runs of any whitespace.
	Whitespace Separator = iota
	// Tabs splits rows on runs of tabs only, keeping spaces inside labels.
	Tabs
)

func (s Separator) split(line string) []string {
	switch s {
	case Tabs:
		fields := strings.FieldsFunc(line, func(r rune) bool { return r == '\t' })
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		return fields
	default:
		return strings.Fields(line)
	}
}

func (s Separator) String() string {
	if s == Tabs {
		return "tabs"
	}
	return "whitespace"
}

// ImportLab reads a lab file into a new annotation of namespace ns.
//
// The widest row decides the layout. One column holds onset times only, two
// columns hold (time, value) with each duration running to the next onset and
// the last one zero, and three or more hold (start, end, ..., value) where the
// value is the last column of the row. Every observation gets confidence 1.
func ImportLab(ns Namespace, r io.Reader, sep Separator) (*Annotation, error) {
	var (
		rows    [][]string
		lineNos []int
		width   int
	)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		fields := sep.split(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		rows = append(rows, fields)
		lineNos = append(lineNos, lineNo)
		width = max(width, len(fields))
	}
	if err := scanner.Err(); nil != err {
		flawP := flaw.P{"err_debug_tree": errutil.Tree(err).FlawP(), "namespace": ns}
		return nil, flaw.From(fmt.Errorf("failed to scan lab content: %v", err)).Append(flawP)
	}

	annot := NewAnnotation(ns)
	times := make([]float64, len(rows))
	for i, row := range rows {
		t, err := parseTiming(row[0])
		if nil != err {
			return nil, fmt.Errorf("%w: line %d: time %q", ErrNonNumericColumn, lineNos[i], row[0])
		}
		times[i] = t
	}

	if width <= 2 {
		for i, row := range rows {
			var duration float64
			if i+1 < len(rows) {
				duration = times[i+1] - times[i]
			}
			var value any
			if len(row) == 2 {
				value = row[1]
			}
			annot.Append(Observation{Time: times[i], Duration: duration, Value: value, Confidence: 1})
		}
		return annot, nil
	}

	for i, row := range rows {
		if len(row) < 2 {
			return nil, fmt.Errorf("%w: line %d: missing end time", ErrNonNumericColumn, lineNos[i])
		}
		end, err := parseTiming(row[1])
		if nil != err {
			return nil, fmt.Errorf("%w: line %d: end time %q", ErrNonNumericColumn, lineNos[i], row[1])
		}
		var value any
		if len(row) > 2 {
			value = row[len(row)-1]
		}
		annot.Append(Observation{Time: times[i], Duration: end - times[i], Value: value, Confidence: 1})
	}
	return annot, nil
}

func parseTiming(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

func ImportLabFile(ns Namespace, filePath string, sep Separator) (*Annotation, error) {
	b, err := os.ReadFile(filePath)
	if nil != err {
		flawP := flaw.P{"err_debug_tree": errutil.Tree(err).FlawP(), "file_path": filePath}
		return nil, flaw.From(fmt.Errorf("failed to read lab file: %v", err)).Append(flawP)
	}
	return ImportLab(ns, bytes.NewReader(b), sep)
}

// ExportLab writes a tab-separated table of a's observations with a header
// row. Missing values are written as empty cells.
func ExportLab(w io.Writer, a *Annotation) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString("time\tduration\tvalue\tconfidence\n"); nil != err {
		return fmt.Errorf("failed to write lab header: %v", err)
	}
	for _, o := range a.Data {
		line := strings.Join(
			[]string{
				formatFloat(o.Time),
				formatFloat(o.Duration),
				formatValue(o.Value),
				formatFloat(o.Confidence),
			},
			"\t",
		)
		if _, err := bw.WriteString(line + "\n"); nil != err {
			return fmt.Errorf("failed to write lab row: %v", err)
		}
	}
	if err := bw.Flush(); nil != err {
		return fmt.Errorf("failed to flush lab rows: %v", err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return formatFloat(x)
	default:
		return fmt.Sprint(x)
	}
}
