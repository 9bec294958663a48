package main

import (
	"os"

	"github.com/urfave/cli/v2"

	"github.com/xeptore/jamsconv/cache"
	"github.com/xeptore/jamsconv/tagtraum"
	"github.com/xeptore/jamsconv/track"
)

func runTagtraum(cliCtx *cli.Context) error {
	ctx, cancel, logger, cfg, err := setup(cliCtx, 3)
	if nil != err {
		return err
	}
	defer cancel()

	var (
		datasetPath    = cliCtx.Args().Get(0)
		identitiesPath = cliCtx.Args().Get(1)
		outDir         = cliCtx.Args().Get(2)
	)
	logger = logger.With().Str("command", "tagtraum").Logger()

	votes, err := tagtraum.LoadVotesFile(datasetPath, logger)
	if nil != err {
		return err
	}
	if votes.Len() == 0 {
		logger.Warn().Str("dataset", datasetPath).Msg("Dataset holds no votes")
		return track.ErrNoInput
	}

	identities, err := tagtraum.LoadIdentitiesFile(identitiesPath, cfg.Tagtraum.IdentitySeparator, votes.Contains, logger)
	if nil != err {
		return err
	}

	merger := tagtraum.NewMerger(votes, identities, outDir, cfg.OutputExtension)
	merger.LogVariant(logger)

	dirs := cache.NewDirs()
	defer dirs.Close()

	writer := track.NewWriter(dirs, cfg.Workers, cfg.Indent, logger)
	result, err := writer.WriteAll(ctx, merger.Jobs())
	if nil != err {
		return err
	}

	s := summary{
		inputs:  votes.Len() + votes.Malformed(),
		skipped: votes.Malformed(),
		result:  result,
	}
	if err := s.print(os.Stdout); nil != err {
		return err
	}
	return writeReport(cliCtx.String(flagFailures), "tagtraum", result.Failures)
}
