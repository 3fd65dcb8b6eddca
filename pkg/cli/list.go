package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/m-mizutani/appacc/pkg/cli/config"
	"github.com/m-mizutani/appacc/pkg/domain/model"
	"github.com/m-mizutani/appacc/pkg/usecase"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdList(starterCfg *config.Starter) *cli.Command {
	var asJSON bool

	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List technologies offered by the starter backend",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "Output technologies as JSON",
				Destination: &asJSON,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			client, err := starterCfg.NewClient(ctxlog.From(ctx))
			if err != nil {
				return err
			}

			techs, err := usecase.NewDownload(client).ListTechnologies(ctx)
			if err != nil {
				return err
			}

			if asJSON {
				return printJSON(c.Root().Writer, techs)
			}
			printTechnologies(c.Root().Writer, techs)
			return nil
		},
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return goerr.Wrap(err, "failed to encode output")
	}
	return nil
}

func printTechnologies(w io.Writer, techs model.Technologies) {
	id := color.New(color.FgCyan, color.Bold).SprintFunc()
	desc := color.New(color.Faint).SprintFunc()

	if len(techs) == 0 {
		fmt.Fprintln(w, "No technology available")
		return
	}

	for _, t := range techs {
		fmt.Fprintf(w, "%s\t%s", id(t.ID), t.Name)
		if t.Description != "" {
			fmt.Fprintf(w, "\t%s", desc(t.Description))
		}
		fmt.Fprintln(w)
	}
}
