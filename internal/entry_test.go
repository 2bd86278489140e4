package internal

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/norvik/craftport/internal/apperr"
	"github.com/norvik/craftport/internal/testutil"
)

func testConfig(t *testing.T) *Config {
	t.Helper()
	cfg := NewDefaultConfig()
	cfg.Import.Source = t.TempDir()
	cfg.Import.Dist = filepath.Join(t.TempDir(), "content")
	cfg.Import.Cache = filepath.Join(t.TempDir(), "cache")
	return cfg
}

func testOptions(cfg *Config) []Option {
	return []Option{
		WithConfig(cfg),
		WithLogger(testutil.Logger()),
		WithFetcher(&testutil.FakeFetcher{}),
		WithTranscoder(&testutil.FakeTranscoder{}),
	}
}

func TestRun_RequiresConfig(t *testing.T) {
	if err := Run(context.Background()); err == nil {
		t.Fatal("expected error without config")
	}
}

func TestRun_SourceMissing(t *testing.T) {
	cfg := testConfig(t)
	cfg.Import.Source = filepath.Join(t.TempDir(), "nope")
	err := Run(context.Background(), testOptions(cfg)...)
	if !errors.Is(err, apperr.ErrSourceNotFound) {
		t.Fatalf("err = %v, want ErrSourceNotFound", err)
	}
}

func TestRun_NoFiles(t *testing.T) {
	cfg := testConfig(t)
	err := Run(context.Background(), testOptions(cfg)...)
	if !errors.Is(err, apperr.ErrNoFiles) {
		t.Fatalf("err = %v, want ErrNoFiles", err)
	}
}

func TestRun_SkipsBrokenDocumentsAndContinues(t *testing.T) {
	cfg := testConfig(t)
	write := func(name, content string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(cfg.Import.Source, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("empty.md", "")
	write("broken.md", "# Broken\n\nlead\n\n![x](https://cdn.example.com/missing.png)\n")
	write("good.md", "# Good Post\n\nJust text.\n")

	if err := Run(context.Background(), testOptions(cfg)...); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if _, err := os.Stat(filepath.Join(cfg.Import.Dist, "good-post", "index.md")); err != nil {
		t.Errorf("good document not imported: %v", err)
	}
	if _, err := os.Stat(filepath.Join(cfg.Import.Dist, "broken", "index.md")); !os.IsNotExist(err) {
		t.Error("failed document must not produce output")
	}
}
