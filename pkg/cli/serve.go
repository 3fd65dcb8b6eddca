package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/appacc/pkg/cli/config"
	controller "github.com/m-mizutani/appacc/pkg/controller/http"
	"github.com/m-mizutani/appacc/pkg/usecase"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
)

func cmdServe(starterCfg *config.Starter) *cli.Command {
	var (
		serverCfg config.Server
		verify    bool
	)

	flags := append(serverCfg.Flags(), &cli.BoolFlag{
		Name:        "verify",
		Usage:       "Check requested technologies against the starter backend",
		Value:       true,
		Destination: &verify,
		Sources:     cli.EnvVars("APPACC_VERIFY"),
	})

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting appacc server",
				slog.String("addr", serverCfg.Addr),
				slog.String("service_url", starterCfg.ServiceURL),
			)

			client, err := starterCfg.NewClient(logger)
			if err != nil {
				return err
			}

			// Create use cases
			downloadUC := usecase.NewDownload(client, usecase.WithVerify(verify))

			// Create HTTP server with options
			server, err := controller.NewServer(
				ctx,
				downloadUC,
				controller.WithAddr(serverCfg.Addr),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			eg, egCtx := errgroup.WithContext(sigCtx)

			eg.Go(func() error {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return goerr.Wrap(err, "HTTP server error")
				}
				return nil
			})

			eg.Go(func() error {
				<-egCtx.Done()
				logger.Info("Shutting down...")

				// Graceful shutdown
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}
				return nil
			})

			if err := eg.Wait(); err != nil {
				return err
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
