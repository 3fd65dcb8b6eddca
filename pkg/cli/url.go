package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/appacc/pkg/cli/config"
	"github.com/m-mizutani/appacc/pkg/usecase"
	"github.com/m-mizutani/ctxlog"
	"github.com/urfave/cli/v3"
)

func cmdURL(starterCfg *config.Starter) *cli.Command {
	var (
		profileCfg  config.Profile
		techs       []string
		techOptions []string
		deploy      string
		name        string
		workspace   string
		verify      bool
	)

	flags := append(profileCfg.Flags(),
		&cli.StringSliceFlag{
			Name:        "tech",
			Aliases:     []string{"t"},
			Usage:       "Technology ID to include (repeatable)",
			Destination: &techs,
		},
		&cli.StringFlag{
			Name:        "deploy",
			Usage:       "Deploy target (e.g. local, bluemix)",
			Destination: &deploy,
		},
		&cli.StringFlag{
			Name:        "name",
			Usage:       "Project name (default: libertyProject)",
			Destination: &name,
		},
		&cli.StringFlag{
			Name:        "workspace",
			Usage:       "Workspace ID (default: random UUID)",
			Destination: &workspace,
		},
		&cli.StringSliceFlag{
			Name:        "tech-option",
			Usage:       "Technology option, e.g. swagger:server (repeatable)",
			Destination: &techOptions,
		},
		&cli.BoolFlag{
			Name:        "verify",
			Usage:       "Check technologies against the starter backend",
			Destination: &verify,
		},
	)

	return &cli.Command{
		Name:  "url",
		Usage: "Build the project download URL",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			req, err := profileCfg.Load()
			if err != nil {
				return err
			}

			// flags override profile values
			if len(techs) > 0 {
				req.Technologies = techs
			}
			if len(techOptions) > 0 {
				req.TechOptions = techOptions
			}
			if deploy != "" {
				req.Deploy = deploy
			}
			if name != "" {
				req.Name = name
			}
			if workspace != "" {
				req.Workspace = workspace
			}

			client, err := starterCfg.NewClient(ctxlog.From(ctx))
			if err != nil {
				return err
			}

			u, err := usecase.NewDownload(client, usecase.WithVerify(verify)).PrepareDownload(ctx, req)
			if err != nil {
				return err
			}

			fmt.Fprintln(c.Root().Writer, u)
			return nil
		},
	}
}
