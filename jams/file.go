package jams

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/tidwall/pretty"
	"github.com/xeptore/flaw/v8"

	"github.com/xeptore/jamsconv/errutil"
	"github.com/xeptore/jamsconv/must"
)

// Save validates j and writes it to filePath, replacing any existing file.
// Validation failures wrap ErrInvalid and leave the file system untouched.
func (j *JAMS) Save(filePath string, indent bool) (err error) {
	if err := j.Validate(); nil != err {
		return err
	}

	flawP := flaw.P{"file_path": filePath}
	b, err := json.MarshalWithOption(j, json.DisableHTMLEscape())
	if nil != err {
		flawP["err_debug_tree"] = errutil.Tree(err).FlawP()
		return flaw.From(fmt.Errorf("failed to encode container: %v", err)).Append(flawP)
	}
	if indent {
		b = pretty.Pretty(b)
	}

	f, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o0644)
	if nil != err {
		flawP["err_debug_tree"] = errutil.Tree(err).FlawP()
		return flaw.From(fmt.Errorf("failed to open container file for write: %v", err)).Append(flawP)
	}
	defer func() {
		if closeErr := f.Close(); nil != closeErr {
			flawP["err_debug_tree"] = errutil.Tree(closeErr).FlawP()
			err = must.JoinClose(err, flaw.From(fmt.Errorf("failed to close container file: %v", closeErr)).Append(flawP))
		}
	}()

	if _, err := f.Write(b); nil != err {
		flawP["err_debug_tree"] = errutil.Tree(err).FlawP()
		return flaw.From(fmt.Errorf("failed to write container file: %v", err)).Append(flawP)
	}

	if err := f.Sync(); nil != err {
		flawP["err_debug_tree"] = errutil.Tree(err).FlawP()
		return flaw.From(fmt.Errorf("failed to sync container file: %v", err)).Append(flawP)
	}

	return nil
}

func Load(filePath string) (j *JAMS, err error) {
	flawP := flaw.P{"file_path": filePath}

	f, err := os.OpenFile(filePath, os.O_RDONLY, 0o0644)
	if nil != err {
		flawP["err_debug_tree"] = errutil.Tree(err).FlawP()
		return nil, flaw.From(fmt.Errorf("failed to open container file for read: %v", err)).Append(flawP)
	}
	defer func() {
		if closeErr := f.Close(); nil != closeErr {
			flawP["err_debug_tree"] = errutil.Tree(closeErr).FlawP()
			err = must.JoinClose(err, flaw.From(fmt.Errorf("failed to close container file: %v", closeErr)).Append(flawP))
		}
	}()

	j = New()
	if err := json.NewDecoder(f).Decode(j); nil != err {
		flawP["err_debug_tree"] = errutil.Tree(err).FlawP()
		return nil, flaw.From(fmt.Errorf("failed to decode container file: %v", err)).Append(flawP)
	}

	return j, nil
}
