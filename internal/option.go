package internal

import (
	"log/slog"

	"github.com/norvik/craftport/internal/assets"
	"github.com/norvik/craftport/internal/media"
)

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config     *Config
	logger     *slog.Logger
	fetcher    assets.Fetcher
	transcoder media.Transcoder
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithLogger overrides the default JSON logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *application) {
		a.logger = logger
	}
}

// WithFetcher overrides the HTTP fetcher; used by tests.
func WithFetcher(f assets.Fetcher) Option {
	return func(a *application) {
		a.fetcher = f
	}
}

// WithTranscoder overrides the external tool transcoder; used by tests.
func WithTranscoder(tr media.Transcoder) Option {
	return func(a *application) {
		a.transcoder = tr
	}
}
