package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/xeptore/jamsconv/config"
	"github.com/xeptore/jamsconv/constant"
	"github.com/xeptore/jamsconv/errutil"
	"github.com/xeptore/jamsconv/log"
)

const (
	flagConfigFilePath = "config"
	flagLogFormat      = "log-format"
	flagLogLevel       = "log-level"
	flagFailures       = "failures"
)

func main() {
	logger := log.NewPretty(os.Stderr).Level(zerolog.TraceLevel)
	if err := godotenv.Load(); nil != err {
		if errors.Is(err, os.ErrNotExist) {
			logger.Debug().Msg(".env file was not found")
		} else {
			logger.Fatal().Err(err).Msg("Failed to load .env file")
		}
	}

	pipelineFlags := []cli.Flag{
		//nolint:exhaustruct
		&cli.StringFlag{
			Name:     flagFailures,
			Aliases:  []string{"f"},
			Usage:    "Write a YAML report of failed tracks to this file",
			Required: false,
		},
	}

	//nolint:exhaustruct
	app := &cli.App{
		Name:     "jamsconv",
		Version:  constant.Version,
		Compiled: constant.CompileTime,
		Suggest:  true,
		Usage:    "Convert Isophonics and tagtraum annotations to JAMS",
		Flags: []cli.Flag{
			//nolint:exhaustruct
			&cli.StringFlag{
				Name:     flagConfigFilePath,
				Aliases:  []string{"c"},
				Usage:    "Config file path",
				Required: false,
			},
			//nolint:exhaustruct
			&cli.StringFlag{
				Name:    flagLogFormat,
				Usage:   "Log output format: pretty or packed",
				Value:   "pretty",
				EnvVars: []string{"LOG_FORMAT"},
			},
			//nolint:exhaustruct
			&cli.StringFlag{
				Name:    flagLogLevel,
				Usage:   "Minimum log level",
				Value:   zerolog.InfoLevel.String(),
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Commands: []*cli.Command{
			//nolint:exhaustruct
			{
				Name:      "isophonics",
				Aliases:   []string{"iso"},
				Usage:     "Convert an Isophonics lab file tree",
				ArgsUsage: "<in_dir> <out_dir>",
				Action:    runIsophonics,
				Flags:     pipelineFlags,
			},
			//nolint:exhaustruct
			{
				Name:      "tagtraum",
				Aliases:   []string{"tt"},
				Usage:     "Convert a tagtraum genre vote dataset",
				ArgsUsage: "<dataset> <unique_tracks> <out_dir>",
				Action:    runTagtraum,
				Flags:     pipelineFlags,
			},
			//nolint:exhaustruct
			{
				Name:      "lab",
				Usage:     "Export every annotation of a container to lab files",
				ArgsUsage: "<infile> <output_prefix>",
				Action:    runLab,
			},
		},
	}

	if err := app.Run(os.Args); nil != err {
		if errors.Is(err, context.Canceled) {
			logger.Trace().Msg("Application was canceled")
			return
		}
		if errutil.IsFlaw(err) {
			logger.Fatal().Func(log.Flaw(err)).Msg("Application exited with flaw")
			return
		}
		logger.Fatal().Err(err).Msg("Application exited with error")
	}
}

func newLogger(cliCtx *cli.Context) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cliCtx.String(flagLogLevel))
	if nil != err {
		return zerolog.Nop(), fmt.Errorf("failed to parse log level: %v", err)
	}
	return log.New(os.Stderr, cliCtx.String(flagLogFormat), level), nil
}

func loadConfig(cliCtx *cli.Context, logger zerolog.Logger) (*config.Config, error) {
	var (
		cfgEnv      = os.Getenv("CONFIG")
		cfgFilePath = cliCtx.String(flagConfigFilePath)
	)
	switch {
	case cfgFilePath != "" && cfgEnv != "":
		return nil, errors.New("config file path and config environment variable are both set. specify only one")
	case cfgFilePath != "":
		logger.Debug().Str("config_file_path", cfgFilePath).Msg("Loading config from file")
		c, err := config.FromFile(cfgFilePath)
		if nil != err {
			return nil, fmt.Errorf("failed to load config file: %v", err)
		}
		return c, nil
	case cfgEnv != "":
		logger.Debug().Msg("Loading config from environment variable")
		c, err := config.FromString(cfgEnv)
		if nil != err {
			return nil, fmt.Errorf("failed to load config from environment variable: %v", err)
		}
		return c, nil
	default:
		logger.Debug().Msg("Using default config")
		return config.Default(), nil
	}
}

// setup prepares the logger, config and signal-bound context shared by every
// command, after checking that exactly nArgs positional arguments were given.
func setup(cliCtx *cli.Context, nArgs int) (context.Context, context.CancelFunc, zerolog.Logger, *config.Config, error) {
	logger, err := newLogger(cliCtx)
	if nil != err {
		return nil, nil, logger, nil, err
	}
	if got := cliCtx.Args().Len(); got != nArgs {
		return nil, nil, logger, nil, fmt.Errorf("expected %d arguments (%s), got %d", nArgs, cliCtx.Command.ArgsUsage, got)
	}
	cfg, err := loadConfig(cliCtx, logger)
	if nil != err {
		return nil, nil, logger, nil, err
	}
	ctx, cancel := signal.NotifyContext(cliCtx.Context, syscall.SIGINT, syscall.SIGTERM)
	return ctx, cancel, logger, cfg, nil
}
