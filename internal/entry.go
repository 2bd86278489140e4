// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/norvik/craftport/internal/apperr"
	"github.com/norvik/craftport/internal/assets"
	"github.com/norvik/craftport/internal/importer"
	"github.com/norvik/craftport/internal/media"
	"github.com/norvik/craftport/internal/storage"
)

// Run executes one import over the configured source folder. Input errors
// are fatal; per-document failures are logged and the run continues.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	logger := app.logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: cfg.App.Level(),
		}))
	}

	logger.Info("Starting import",
		slog.String("source", cfg.Import.Source),
		slog.String("dist", cfg.Import.Dist),
		slog.String("cache", cfg.Import.Cache))

	info, err := os.Stat(cfg.Import.Source)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", apperr.ErrSourceNotFound, cfg.Import.Source)
	}

	for _, dir := range []string{cfg.Import.Dist, cfg.Import.Cache, cfg.Import.PostersPath()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	files, err := storage.ListMarkdownFiles(cfg.Import.Source)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: %s", apperr.ErrNoFiles, cfg.Import.Source)
	}
	logger.Info("Files found", slog.Int("count", len(files)))

	fetcher := app.fetcher
	if fetcher == nil {
		fetcher = assets.NewHTTPFetcher(cfg.Import.DownloadTimeout.Std())
	}
	transcoder := app.transcoder
	if transcoder == nil {
		transcoder = media.ToolTranscoder{Timeout: cfg.Import.TranscodeTimeout.Std()}
	}

	resolver := assets.NewResolver(cfg.Import.Cache, fetcher, transcoder, logger)
	orch := media.NewOrchestrator(cfg.Import.Cache, cfg.Import.PostersPath(), transcoder, logger)
	imp := importer.New(cfg.Import.Dist, cfg.Import.Workers, resolver, orch, logger)

	// Documents are processed one at a time; asset fan-out happens inside
	// each document.
	imported := 0
	for _, file := range files {
		logger.Info("Processing file", slog.String("path", file))
		outPath, err := imp.Process(ctx, file)
		if err != nil {
			if errors.Is(err, apperr.ErrEmptyDocument) {
				logger.Error("File parsing error", slog.String("path", file))
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.Error("Document failed",
				slog.String("path", file), slog.String("error", err.Error()))
			continue
		}
		logger.Info("File processed", slog.String("path", outPath))
		imported++
	}

	logger.Info("Done",
		slog.Int("imported", imported),
		slog.Int("failed", len(files)-imported))
	return nil
}
