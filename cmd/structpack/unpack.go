package main

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/rawbytedev/structpack"
	"github.com/rawbytedev/structpack/internal/logger"
	"github.com/rawbytedev/structpack/pkg/frame"
)

func unpackCmd() *cli.Command {
	return &cli.Command{
		Name:  "unpack",
		Usage: "Unpack bytes into a JSON array of values (non-finite floats print as \"NaN\", \"+Inf\", \"-Inf\")",
		Flags: append(formatFlags(),
			&cli.StringFlag{
				Name:  "hex",
				Usage: "Input bytes as hex; whitespace is ignored",
			},
			&cli.StringFlag{
				Name:    "input",
				Aliases: []string{"in", "i"},
				Usage:   "Read raw bytes from this file",
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx).With("cmd", "unpack")
			// a frame carries its own format
			format, err := resolveFormat(ctx, cmd)
			if err != nil && !(errors.Is(err, errNoFormat) && cmd.Bool("frame")) {
				return err
			}
			data, err := readInput(cmd)
			if err != nil {
				return err
			}
			if cmd.Bool("frame") {
				f, err := frame.Decode(data)
				if err != nil {
					return err
				}
				if format == "" {
					format = f.Format
				} else if format != f.Format {
					log.Warn("format differs from frame", "given", format, "frame", f.Format)
				}
				data = f.Payload
			}

			vals, err := structpack.Unpack(format, data)
			if err != nil {
				return err
			}
			log.Debug("unpacked", "format", format, "fields", len(vals), "bytes", len(data))
			out, err := encodeValues(vals)
			if err != nil {
				return fmt.Errorf("encode values: %w", err)
			}
			_, err = fmt.Fprintln(cmd.Root().Writer, string(out))
			return err
		},
	}
}

func readInput(cmd *cli.Command) ([]byte, error) {
	h, path := cmd.String("hex"), cmd.String("input")
	switch {
	case h != "" && path != "":
		return nil, errors.New("--hex and --input are mutually exclusive")
	case path != "":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read input: %w", err)
		}
		return data, nil
	case cmd.IsSet("hex"):
		data, err := hex.DecodeString(strings.Join(strings.Fields(h), ""))
		if err != nil {
			return nil, fmt.Errorf("decode hex: %w", err)
		}
		return data, nil
	default:
		return nil, errors.New("one of --hex or --input is required")
	}
}
