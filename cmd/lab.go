package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"
	"github.com/xeptore/flaw/v8"

	"github.com/xeptore/jamsconv/cache"
	"github.com/xeptore/jamsconv/errutil"
	"github.com/xeptore/jamsconv/jams"
	"github.com/xeptore/jamsconv/must"
)

func runLab(cliCtx *cli.Context) error {
	_, cancel, logger, _, err := setup(cliCtx, 2)
	if nil != err {
		return err
	}
	defer cancel()

	var (
		inFile = cliCtx.Args().Get(0)
		prefix = cliCtx.Args().Get(1)
	)
	logger = logger.With().Str("command", "lab").Logger()

	j, err := jams.Load(inFile)
	if nil != err {
		return err
	}

	dirs := cache.NewDirs()
	defer dirs.Close()
	if err := dirs.Ensure(filepath.Dir(prefix)); nil != err {
		return err
	}

	paths, err := exportLabs(j, prefix)
	if nil != err {
		return err
	}
	for _, p := range paths {
		logger.Info().Str("path", p).Msg("Wrote lab file")
	}
	return nil
}

// exportLabs writes every annotation of j to <prefix>.<namespace>.<n>.lab,
// numbering annotations of the same namespace from zero.
func exportLabs(j *jams.JAMS, prefix string) ([]string, error) {
	counts := make(map[jams.Namespace]int)
	paths := make([]string, 0, len(j.Annotations))
	for _, a := range j.Annotations {
		p := fmt.Sprintf("%s.%s.%d.lab", prefix, a.Namespace, counts[a.Namespace])
		counts[a.Namespace]++
		if err := writeLab(p, a); nil != err {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

func writeLab(filePath string, a *jams.Annotation) (err error) {
	f, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o0644)
	if nil != err {
		flawP := flaw.P{"err_debug_tree": errutil.Tree(err).FlawP(), "file_path": filePath}
		return flaw.From(fmt.Errorf("failed to open lab file for write: %v", err)).Append(flawP)
	}
	defer func() {
		if closeErr := f.Close(); nil != closeErr {
			flawP := flaw.P{"err_debug_tree": errutil.Tree(closeErr).FlawP(), "file_path": filePath}
			err = must.JoinClose(err, flaw.From(fmt.Errorf("failed to close lab file: %v", closeErr)).Append(flawP))
		}
	}()

	if err := jams.ExportLab(f, a); nil != err {
		flawP := flaw.P{"err_debug_tree": errutil.Tree(err).FlawP(), "file_path": filePath}
		return flaw.From(fmt.Errorf("failed to export annotation: %v", err)).Append(flawP)
	}
	return nil
}
