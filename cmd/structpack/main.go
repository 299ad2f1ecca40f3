package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/rawbytedev/structpack/internal/logger"
)

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(context.Background(), os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "structpack",
		Usage:     "Pack and unpack fixed-layout little-endian binary records",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "YAML config file with log settings and named layouts",
				Value: configPath(),
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug|info|warn|error",
				Value: "info",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "text|json",
				Value: "text",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			cfg, err := LoadConfig(cmd.String("config"))
			if err != nil {
				return ctx, err
			}
			applyLogConfig(cmd, &cfg)
			log := logger.ForFormat(stderr, cfg.LogFormat, logger.ParseLevel(cfg.LogLevel))
			ctx = logger.WithContext(ctx, log)
			return withConfig(ctx, cfg), nil
		},
		Commands: []*cli.Command{
			packCmd(),
			unpackCmd(),
			layoutsCmd(),
		},
	}
}
