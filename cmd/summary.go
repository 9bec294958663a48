package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/xeptore/flaw/v8"

	"github.com/xeptore/jamsconv/errutil"
	"github.com/xeptore/jamsconv/isophonics"
	"github.com/xeptore/jamsconv/jams"
	"github.com/xeptore/jamsconv/log"
	"github.com/xeptore/jamsconv/must"
	"github.com/xeptore/jamsconv/tagtraum"
	"github.com/xeptore/jamsconv/track"
)

type summary struct {
	inputs  int
	skipped int
	result  *track.Result
}

func (s summary) render() string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"stage", "count"})
	tw.AppendRows([]table.Row{
		{"inputs", strconv.Itoa(s.inputs)},
		{"skipped", strconv.Itoa(s.skipped)},
		{"failed", strconv.Itoa(len(s.result.Failures))},
		{"written", strconv.Itoa(s.result.Written)},
	})
	tw.SetColumnConfigs([]table.ColumnConfig{
		//nolint:exhaustruct
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		//nolint:exhaustruct
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

func (s summary) print(w io.Writer) error {
	if _, err := fmt.Fprintln(w, s.render()); nil != err {
		return fmt.Errorf("failed to print run summary: %v", err)
	}
	return nil
}

var failureKinds = map[error]string{
	tagtraum.ErrMissingIdentity: "missing_identity",
	jams.ErrInvalid:             "invalid_container",
	isophonics.ErrNoAnnotations: "no_annotations",
}

func failureKind(err error) string {
	if target, ok := errutil.IsAny(err, tagtraum.ErrMissingIdentity, jams.ErrInvalid, isophonics.ErrNoAnnotations); ok {
		return failureKinds[target]
	}
	return "other"
}

func newReport(command string, failures []track.Failure) errutil.Report {
	entries := make([]errutil.ReportEntry, len(failures))
	for i, f := range failures {
		entries[i] = errutil.NewReportEntry(f.ID, failureKind(f.Err), f.Err)
	}
	return errutil.Report{Command: command, RunID: log.RunID, Failures: entries}
}

// writeReport dumps failures to filePath. It is a no-op when filePath is empty.
func writeReport(filePath, command string, failures []track.Failure) (err error) {
	if filePath == "" {
		return nil
	}

	f, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o0644)
	if nil != err {
		flawP := flaw.P{"err_debug_tree": errutil.Tree(err).FlawP(), "file_path": filePath}
		return flaw.From(fmt.Errorf("failed to open failure report file: %v", err)).Append(flawP)
	}
	defer func() {
		if closeErr := f.Close(); nil != closeErr {
			flawP := flaw.P{"err_debug_tree": errutil.Tree(closeErr).FlawP(), "file_path": filePath}
			err = must.JoinClose(err, flaw.From(fmt.Errorf("failed to close failure report file: %v", closeErr)).Append(flawP))
		}
	}()

	return newReport(command, failures).WriteYAML(f)
}
