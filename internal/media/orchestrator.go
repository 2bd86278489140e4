package media

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/norvik/craftport/internal/checksum"
	"github.com/norvik/craftport/internal/storage"
)

// Orchestrator runs the cache-and-reuse decision tree around a Transcoder.
// Cache entries are keyed by the source file's content hash and are never
// overwritten or invalidated.
type Orchestrator struct {
	cacheDir   string
	postersDir string
	tr         Transcoder
	logger     *slog.Logger
}

// NewOrchestrator creates an Orchestrator over the transcoding cache and
// posters cache directories. Both must already exist.
func NewOrchestrator(cacheDir, postersDir string, tr Transcoder, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{cacheDir: cacheDir, postersDir: postersDir, tr: tr, logger: logger}
}

// EnsureVariant makes sure a variant of assetPath in the given container
// format (e.g. "mov", "mp4") exists beside the source, transcoding through
// the cache only on a full miss. It returns the variant's path.
func (o *Orchestrator) EnsureVariant(ctx context.Context, assetPath, format string) (string, error) {
	stem := strings.TrimSuffix(filepath.Base(assetPath), filepath.Ext(assetPath))
	outPath := filepath.Join(filepath.Dir(assetPath), stem+"."+format)
	if storage.Exists(outPath) {
		o.logger.Debug("video variant exists", slog.String("path", outPath))
		return outPath, nil
	}

	hash, err := checksum.SumFile(assetPath)
	if err != nil {
		return "", err
	}
	cachePath := filepath.Join(o.cacheDir, hash+"."+format)
	if !storage.Exists(cachePath) {
		o.logger.Info("transcoding video",
			slog.String("src", assetPath), slog.String("format", format))
		if err := o.tr.TranscodeVideo(ctx, assetPath, cachePath); err != nil {
			return "", err
		}
	} else {
		o.logger.Debug("video variant found in cache", slog.String("path", cachePath))
	}
	if err := storage.CopyFile(cachePath, outPath); err != nil {
		return "", err
	}
	return outPath, nil
}

// EnsurePoster makes sure a poster JPEG for assetPath exists beside the
// source and returns its path. The poster name carries a short content-hash
// suffix so different videos sharing a base name cannot clobber each other.
func (o *Orchestrator) EnsurePoster(ctx context.Context, assetPath string) (string, error) {
	hash, err := checksum.SumFile(assetPath)
	if err != nil {
		return "", err
	}
	stem := strings.TrimSuffix(filepath.Base(assetPath), filepath.Ext(assetPath))
	outPath := filepath.Join(filepath.Dir(assetPath), stem+"-"+checksum.Short(hash)+".jpg")
	if storage.Exists(outPath) {
		o.logger.Debug("poster exists", slog.String("path", outPath))
		return outPath, nil
	}

	cachePath := filepath.Join(o.postersDir, hash+".jpg")
	if !storage.Exists(cachePath) {
		o.logger.Info("extracting poster frame", slog.String("src", assetPath))
		if err := o.tr.ExtractPosterFrame(ctx, assetPath, cachePath); err != nil {
			return "", err
		}
	} else {
		o.logger.Debug("poster found in cache", slog.String("path", cachePath))
	}
	if err := storage.CopyFile(cachePath, outPath); err != nil {
		return "", err
	}
	return outPath, nil
}
