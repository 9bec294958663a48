package jams

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/xeptore/flaw/v8"

	"github.com/xeptore/jamsconv/errutil"
)

// FindWithExtension returns the sorted paths of regular files under root whose
// extension is ext and which sit at most depth path segments below root. A
// file directly inside root is at depth 1. Hidden files and directories, those
// whose name starts with a dot, are never visited.
func FindWithExtension(root, ext string, depth int) ([]string, error) {
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	var out []string
	walk := func(p string, d fs.DirEntry, err error) error {
		if nil != err {
			return err
		}
		if p == root {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if nil != err {
			return err
		}
		level := len(strings.Split(filepath.ToSlash(rel), "/"))
		if d.IsDir() {
			if level >= depth {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() && filepath.Ext(p) == ext {
			out = append(out, p)
		}
		return nil
	}

	if err := filepath.WalkDir(root, walk); nil != err {
		flawP := flaw.P{
			"err_debug_tree": errutil.Tree(err).FlawP(),
			"root":           root,
			"ext":            ext,
			"depth":          depth,
		}
		return nil, flaw.From(fmt.Errorf("failed to walk directory: %v", err)).Append(flawP)
	}
	slices.Sort(out)
	return out, nil
}

// Filebase returns the file name of p without its directory and extension.
func Filebase(p string) string {
	base := filepath.Base(p)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
