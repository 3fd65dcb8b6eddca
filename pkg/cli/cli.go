package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/m-mizutani/appacc/pkg/cli/config"
	"github.com/m-mizutani/appacc/pkg/domain/types"
	"github.com/m-mizutani/ctxlog"
	"github.com/urfave/cli/v3"
)

// runConfig holds output streams of the CLI application
type runConfig struct {
	writer    io.Writer
	errWriter io.Writer
}

// Option is a functional option for Run
type Option func(*runConfig)

// WithWriter sets the destination of command output (default: stdout)
func WithWriter(w io.Writer) Option {
	return func(c *runConfig) {
		c.writer = w
	}
}

// WithErrWriter sets the destination of logs and error messages (default: stderr)
func WithErrWriter(w io.Writer) Option {
	return func(c *runConfig) {
		c.errWriter = w
	}
}

// Run runs the CLI application
func Run(ctx context.Context, args []string, opts ...Option) error {
	var cfg runConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	var (
		loggerCfg  config.Logger
		starterCfg config.Starter
		sentryCfg  config.Sentry
		logger     *slog.Logger
	)

	flags := append(loggerCfg.Flags(), starterCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	app := &cli.Command{
		Name:      "appacc",
		Usage:     "Liberty app accelerator client",
		Version:   types.Version,
		Flags:     flags,
		Writer:    cfg.writer,
		ErrWriter: cfg.errWriter,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			// logs share the error stream, never the command output
			loggerCfg.Output = c.Root().ErrWriter

			var err error
			logger, err = loggerCfg.Configure()
			if err != nil {
				return nil, err
			}
			if err := sentryCfg.Configure(); err != nil {
				return nil, err
			}

			slog.SetDefault(logger)
			ctx = ctxlog.With(ctx, logger)
			return ctx, nil
		},
		Commands: []*cli.Command{
			cmdList(&starterCfg),
			cmdURL(&starterCfg),
			cmdServe(&starterCfg),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Error("CLI execution failed", slog.Any("error", err))
		sentryCfg.Report(err)
		return err
	}

	return nil
}
