package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/rawbytedev/structpack"
)

// Config is the structpack config file (~/.config/structpack/config.yaml).
type Config struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// Layouts maps a name to a format string, e.g. udp: "HHHH".
	Layouts map[string]string `yaml:"layouts"`
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "structpack", "config.yaml")
}

// LoadConfig reads and validates the config file. A missing file yields a
// zero Config.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return Config{}, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Config{}, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that every layout is a valid format string.
func (c Config) Validate() error {
	for name, format := range c.Layouts {
		if _, err := structpack.Parse(format); err != nil {
			return fmt.Errorf("layout %q: %w", name, err)
		}
	}
	return nil
}

// Layout returns the format registered under name.
func (c Config) Layout(name string) (string, error) {
	format, ok := c.Layouts[name]
	if !ok {
		return "", fmt.Errorf("unknown layout %q", name)
	}
	return format, nil
}

// applyLogConfig lets flags that were set explicitly win over the file.
func applyLogConfig(c *cli.Command, cfg *Config) {
	if c.IsSet("log-level") || cfg.LogLevel == "" {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("log-format") || cfg.LogFormat == "" {
		cfg.LogFormat = c.String("log-format")
	}
}

type configKey struct{}

func withConfig(ctx context.Context, cfg Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

func configFrom(ctx context.Context) Config {
	cfg, _ := ctx.Value(configKey{}).(Config)
	return cfg
}

var errNoFormat = errors.New("one of --format or --layout is required")

// resolveFormat picks --format or the --layout entry; exactly one must be
// set. An explicit --format "" selects the empty record.
func resolveFormat(ctx context.Context, cmd *cli.Command) (string, error) {
	format, layout := cmd.String("format"), cmd.String("layout")
	switch {
	case cmd.IsSet("format") && layout != "":
		return "", errors.New("--format and --layout are mutually exclusive")
	case layout != "":
		return configFrom(ctx).Layout(layout)
	case cmd.IsSet("format"):
		return format, nil
	default:
		return "", errNoFormat
	}
}
