package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/norvik/craftport/internal"
	pkgconfig "github.com/norvik/craftport/pkg/config"
)

func run(ctx context.Context, cmd *cli.Command) error {
	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.LoadOptional(cmd.String("config"), cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	// Flags override file values.
	if cmd.IsSet("src") {
		cfg.Import.Source = cmd.String("src")
	}
	if cmd.IsSet("dist") {
		cfg.Import.Dist = cmd.String("dist")
	}
	if cmd.IsSet("cache") {
		cfg.Import.Cache = cmd.String("cache")
	}
	if cmd.Bool("debug") {
		cfg.App.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := internal.Run(ctx, internal.WithConfig(cfg)); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}

	return nil
}

func main() {
	cmd := &cli.Command{
		Name:   "craftport",
		Usage:  "Migrate exported markdown notes into a static-site content tree with cached asset download and transcoding",
		Action: run,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
			&cli.StringFlag{
				Name:    "src",
				Aliases: []string{"s"},
				Usage:   "Source folder with exported markdown files",
			},
			&cli.StringFlag{
				Name:    "dist",
				Aliases: []string{"d"},
				Usage:   "Destination content folder",
			},
			&cli.StringFlag{
				Name:  "cache",
				Usage: "Download and transcoding cache folder",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
