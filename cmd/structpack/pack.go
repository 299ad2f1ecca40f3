package main

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/rawbytedev/structpack"
	"github.com/rawbytedev/structpack/internal/logger"
	"github.com/rawbytedev/structpack/pkg/frame"
)

func formatFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Format string, e.g. IH?d",
		},
		&cli.StringFlag{
			Name:    "layout",
			Aliases: []string{"l"},
			Usage:   "Named layout from the config file",
		},
		&cli.BoolFlag{
			Name:  "frame",
			Usage: "Wrap (or expect) the record in a framed envelope carrying the format",
		},
	}
}

func packCmd() *cli.Command {
	return &cli.Command{
		Name:  "pack",
		Usage: "Pack a JSON array of values into bytes",
		Flags: append(formatFlags(),
			&cli.StringFlag{
				Name:     "values",
				Aliases:  []string{"v"},
				Usage:    "JSON array of values, e.g. '[14, 12, true, 3.5]'; floats may be \"NaN\", \"+Inf\" or \"-Inf\"",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "compress",
				Usage: "zstd-compress the payload (requires --frame)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"out", "o"},
				Usage:   "Write raw bytes to this file instead of printing hex",
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx).With("cmd", "pack")
			format, err := resolveFormat(ctx, cmd)
			if err != nil {
				return err
			}
			if cmd.Bool("compress") && !cmd.Bool("frame") {
				return errors.New("--compress requires --frame")
			}
			ds, err := structpack.Parse(format)
			if err != nil {
				return err
			}
			vals, err := decodeValues(ds, cmd.String("values"))
			if err != nil {
				return err
			}
			out, err := structpack.PackDescriptors(ds, vals...)
			if err != nil {
				return err
			}
			log.Debug("packed", "format", format, "fields", len(ds), "bytes", len(out))
			if cmd.Bool("frame") {
				out, err = frame.Encode(format, out, frame.Options{Compress: cmd.Bool("compress")})
				if err != nil {
					return err
				}
				log.Debug("framed", "bytes", len(out), "compressed", cmd.Bool("compress"))
			}

			if path := cmd.String("output"); path != "" {
				if err := os.WriteFile(path, out, 0o644); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
				log.Info("wrote record", "path", path, "bytes", len(out))
				return nil
			}
			_, err = fmt.Fprintln(cmd.Root().Writer, hex.EncodeToString(out))
			return err
		},
	}
}
