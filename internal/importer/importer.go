// Package importer assembles one output document per source file: directive
// extraction, asset resolution, content rewriting, frontmatter rendering,
// and emission into the destination tree.
package importer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/norvik/craftport/internal/assets"
	"github.com/norvik/craftport/internal/markdown"
	"github.com/norvik/craftport/internal/media"
	"github.com/norvik/craftport/internal/storage"
)

// Importer drives the per-document pipeline.
type Importer struct {
	distDir  string
	workers  int
	resolver *assets.Resolver
	orch     *media.Orchestrator
	logger   *slog.Logger
}

// New creates an Importer writing under distDir. workers bounds the asset
// fan-out within a single document.
func New(distDir string, workers int, resolver *assets.Resolver, orch *media.Orchestrator, logger *slog.Logger) *Importer {
	if workers < 1 {
		workers = 1
	}
	return &Importer{
		distDir:  distDir,
		workers:  workers,
		resolver: resolver,
		orch:     orch,
		logger:   logger,
	}
}

// Process imports the source file at path and returns the written file's
// path. Any asset or transcode failure aborts this document; nothing partial
// is emitted because the output file is written last.
func (im *Importer) Process(ctx context.Context, path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("importer: read %s: %w", path, err)
	}
	fileTitle := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	doc, err := markdown.Extract(string(raw), fileTitle)
	if err != nil {
		return "", err
	}

	postDir, err := storage.SafeJoin(im.distDir, doc.Slug)
	if err != nil {
		return "", fmt.Errorf("importer: slug %q: %w", doc.Slug, err)
	}
	assetsDir := filepath.Join(postDir, "assets")
	if err := os.MkdirAll(assetsDir, 0o755); err != nil {
		return "", fmt.Errorf("importer: create post folders: %w", err)
	}

	if doc.Cover != nil {
		name, err := im.resolver.Resolve(ctx, doc.Cover.Image, doc.Cover.Caption, assetsDir)
		if err != nil {
			return "", err
		}
		doc.Cover.Image = "assets/" + name
	}

	content, err := im.resolveBodyAssets(ctx, doc.Content, assetsDir)
	if err != nil {
		return "", err
	}

	content = markdown.RewriteYouTube(content)
	content = markdown.RewriteGalleries(content)

	content, err = im.renderVideos(ctx, content, postDir)
	if err != nil {
		return "", err
	}

	outName := "index.md"
	if doc.Lang != "" {
		outName = "index." + doc.Lang + ".md"
	}
	outPath := filepath.Join(postDir, outName)
	out := RenderFrontMatter(doc) + "\n\n" + content + "\n"
	if err := storage.WriteFile(outPath, []byte(out)); err != nil {
		return "", err
	}
	return outPath, nil
}

// resolveBodyAssets resolves every image, PDF, and video entity and rewrites
// each URL occurrence to its local relative path. Resolution fans out on a
// bounded group; substitution stays sequential in entry order so replacement
// remains deterministic.
func (im *Importer) resolveBodyAssets(ctx context.Context, content, assetsDir string) (string, error) {
	var entries []markdown.Entry
	entries = append(entries, markdown.ImageEntries(content)...)
	entries = append(entries, markdown.PDFEntries(content)...)
	for _, v := range markdown.VideoEntries(content) {
		entries = append(entries, v.Entry)
	}
	if len(entries) == 0 {
		return content, nil
	}

	// Resolve each distinct URL once: duplicate entries share a cache key,
	// and a single writer per key keeps cache population race-free.
	type job struct {
		url, caption string
	}
	var jobs []job
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if seen[e.URL] {
			continue
		}
		seen[e.URL] = true
		jobs = append(jobs, job{url: e.URL, caption: e.Caption})
	}

	names := make(map[string]string, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(im.workers)
	var mu sync.Mutex
	for _, j := range jobs {
		j := j
		g.Go(func() error {
			name, err := im.resolver.Resolve(gctx, j.url, j.caption, assetsDir)
			if err != nil {
				return err
			}
			mu.Lock()
			names[j.url] = name
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	for _, e := range entries {
		content = strings.Replace(content, e.URL, "assets/"+names[e.URL], 1)
	}
	return content, nil
}

// renderVideos replaces each video link with a video shortcode carrying MOV,
// MP4, and poster attributes. A format the source URL already represents is
// passed through; the missing one is derived via the orchestrator.
func (im *Importer) renderVideos(ctx context.Context, content, postDir string) (string, error) {
	for _, entry := range markdown.VideoEntries(content) {
		assetPath := filepath.Join(postDir, entry.URL)

		var props []string
		mov := entry.Formats.MOV
		if mov == "" {
			p, err := im.orch.EnsureVariant(ctx, assetPath, "mov")
			if err != nil {
				return "", err
			}
			if mov, err = filepath.Rel(postDir, p); err != nil {
				return "", err
			}
		}
		props = append(props, fmt.Sprintf("mov=%q", mov))

		mp4 := entry.Formats.MP4
		if mp4 == "" {
			p, err := im.orch.EnsureVariant(ctx, assetPath, "mp4")
			if err != nil {
				return "", err
			}
			if mp4, err = filepath.Rel(postDir, p); err != nil {
				return "", err
			}
		}
		props = append(props, fmt.Sprintf("mp4=%q", mp4))

		poster, err := im.orch.EnsurePoster(ctx, assetPath)
		if err != nil {
			return "", err
		}
		rel, err := filepath.Rel(postDir, poster)
		if err != nil {
			return "", err
		}
		props = append(props, fmt.Sprintf("poster=%q", rel))

		if entry.Caption != "" {
			props = append(props, fmt.Sprintf("caption=%q", entry.Caption))
		}

		shortcode := "{{< video " + strings.Join(props, " ") + " >}}"
		content = strings.Replace(content, entry.Raw, shortcode, 1)
	}
	return content, nil
}
