package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/xeptore/jamsconv/cache"
	"github.com/xeptore/jamsconv/isophonics"
	"github.com/xeptore/jamsconv/track"
)

func runIsophonics(cliCtx *cli.Context) error {
	ctx, cancel, logger, cfg, err := setup(cliCtx, 2)
	if nil != err {
		return err
	}
	defer cancel()

	var (
		inDir  = cliCtx.Args().Get(0)
		outDir = cliCtx.Args().Get(1)
	)
	logger = logger.With().Str("command", "isophonics").Logger()

	classifier, err := isophonics.NewClassifier(cfg.Isophonics.Keywords)
	if nil != err {
		return fmt.Errorf("failed to build category classifier: %v", err)
	}

	grouper := isophonics.NewGrouper(inDir, outDir, cfg.OutputExtension, classifier, cfg.Isophonics.Extensions, logger)
	paths, err := grouper.Discover()
	if nil != err {
		return err
	}
	if len(paths) == 0 {
		logger.Warn().Str("in_dir", inDir).Msg("No annotation files were found")
		return track.ErrNoInput
	}

	idx, stats := grouper.Build(paths)
	logger.Info().
		Int("files", stats.Files).
		Int("tracks", idx.Len()).
		Int("malformed_paths", stats.MalformedPaths).
		Int("unclassified", stats.Unclassified).
		Msg("Indexed annotation files")

	dirs := cache.NewDirs()
	defer dirs.Close()

	writer := track.NewWriter(dirs, cfg.Workers, cfg.Indent, logger)
	result, err := writer.WriteAll(ctx, idx.Jobs(logger))
	if nil != err {
		return err
	}

	s := summary{inputs: stats.Files, skipped: stats.Skipped(), result: result}
	if err := s.print(os.Stdout); nil != err {
		return err
	}
	return writeReport(cliCtx.String(flagFailures), "isophonics", result.Failures)
}
