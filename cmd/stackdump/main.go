package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/logicossoftware/go-stackfile/internal"
	pkgconfig "github.com/logicossoftware/go-stackfile/pkg/config"
)

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to config file",
			DefaultText: "config/config.yaml",
			Value:       "config/config.yaml",
			Sources:     cli.EnvVars("STACKDUMP_CONFIG"),
		},
		&cli.StringFlag{
			Name:  "revision",
			Usage: `Part text layout: "auto", "1" or "2"`,
		},
		&cli.StringFlag{
			Name:  "charset",
			Usage: `Text encoding: "utf-8" or "macroman"`,
		},
	}
}

// loadConfig reads the config file, then applies flag overrides.
func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.LoadOptional(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if !cmd.IsSet("revision") && !cmd.IsSet("charset") {
		return cfg, nil
	}
	if cmd.IsSet("revision") {
		cfg.Inspect.Revision = cmd.String("revision")
	}
	if cmd.IsSet("charset") {
		cfg.Inspect.Charset = cmd.String("charset")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}

func action(mode internal.Mode) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		if cmd.Args().Len() == 0 {
			return fmt.Errorf("%s: at least one stack file is required", mode)
		}
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		opts := []internal.Option{
			internal.WithConfig(cfg),
			internal.WithMode(mode),
			internal.WithFiles(cmd.Args().Slice()...),
		}

		if err := internal.Run(ctx, opts...); err != nil {
			return fmt.Errorf("%s: %w", mode, err)
		}
		return nil
	}
}

func main() {
	cmd := &cli.Command{
		Name:  "stackdump",
		Usage: "Decode and check the blocks of legacy stack files",
		Commands: []*cli.Command{
			{
				Name:      "inspect",
				Usage:     "Write a JSON report of every block",
				ArgsUsage: "FILE...",
				Flags:     commonFlags(),
				Action:    action(internal.ModeInspect),
			},
			{
				Name:      "check",
				Usage:     "Decode every block and fail if any is broken",
				ArgsUsage: "FILE...",
				Flags:     commonFlags(),
				Action:    action(internal.ModeCheck),
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
