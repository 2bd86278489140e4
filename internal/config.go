package internal

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	App    ApplicationConfig `yaml:"app"`
	Import ImportConfig      `yaml:"import"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	return c.Import.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel string `yaml:"log_level"`
}

// Level maps the configured log level name onto a slog level. Unknown names
// fall back to info.
func (c *ApplicationConfig) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ImportConfig holds the source, destination, and cache layout plus the
// per-document resource limits.
type ImportConfig struct {
	Source string `yaml:"source"`
	Dist   string `yaml:"dist"`
	Cache  string `yaml:"cache"`

	// Workers bounds asset fan-out within one document.
	Workers int `yaml:"workers"`

	DownloadTimeout  Duration `yaml:"download_timeout"`
	TranscodeTimeout Duration `yaml:"transcode_timeout"`
}

// PostersPath returns the poster-frame cache directory under the cache root.
func (c *ImportConfig) PostersPath() string {
	return filepath.Join(c.Cache, "posters")
}

// Validate validates the import configuration.
func (c *ImportConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Source, validation.Required),
		validation.Field(&c.Dist, validation.Required),
		validation.Field(&c.Cache, validation.Required),
		validation.Field(&c.Workers, validation.Required, validation.Min(1)),
	)
}

// Duration wraps time.Duration so YAML values like "2m" parse.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: "info",
		},
		Import: ImportConfig{
			Source:           "craft",
			Dist:             "content",
			Cache:            ".cache",
			Workers:          4,
			DownloadTimeout:  Duration(2 * time.Minute),
			TranscodeTimeout: Duration(5 * time.Minute),
		},
	}
}
