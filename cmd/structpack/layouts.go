package main

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/urfave/cli/v3"
)

func layoutsCmd() *cli.Command {
	return &cli.Command{
		Name:  "layouts",
		Usage: "List the named layouts from the config file",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := configFrom(ctx)
			w := cmd.Root().Writer
			for _, name := range slices.Sorted(maps.Keys(cfg.Layouts)) {
				if _, err := fmt.Fprintf(w, "%s\t%s\n", name, cfg.Layouts[name]); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
