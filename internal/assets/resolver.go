// Package assets turns remote asset URLs into stable, de-duplicated local
// files. Lookups go per-post assets folder first, then the global
// URL-hash-keyed download cache; only a full miss touches the network.
package assets

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/norvik/craftport/internal/checksum"
	"github.com/norvik/craftport/internal/storage"
	"github.com/norvik/craftport/internal/text"
)

// partSuffix marks an in-flight download in the cache directory. Lookups
// ignore these, so a crashed run never serves a truncated asset.
const partSuffix = ".part"

// normalizeExts are download extensions converted to jpg before use.
var normalizeExts = map[string]bool{"tiff": true, "tif": true, "octet-stream": true}

// ImageConverter converts an image file between formats. Satisfied by
// media.ToolTranscoder.
type ImageConverter interface {
	ConvertImage(ctx context.Context, src, dst string) error
}

// Resolver resolves asset URLs against the assets folder and download cache.
type Resolver struct {
	cacheDir  string
	fetcher   Fetcher
	converter ImageConverter
	logger    *slog.Logger
}

// NewResolver creates a Resolver over cacheDir. The cache directory must
// already exist.
func NewResolver(cacheDir string, fetcher Fetcher, converter ImageConverter, logger *slog.Logger) *Resolver {
	return &Resolver{cacheDir: cacheDir, fetcher: fetcher, converter: converter, logger: logger}
}

// Resolve returns the local file name (relative to assetsDir) for url,
// downloading and converting on a full cache miss. Repeated calls for the
// same URL are idempotent and network-free after the first success.
func (r *Resolver) Resolve(ctx context.Context, rawURL, title, assetsDir string) (string, error) {
	key := checksum.URLKey(rawURL)
	fileTitle := FileTitle(rawURL, title)

	// Already present in the post's assets folder. Exact stem matches win
	// over plain containment: derived files (poster frames) embed the same
	// stem plus a suffix and must not shadow the asset itself. A derived
	// variant shares the stem exactly and differs only in extension, so
	// among exact matches the URL's own extension (or, for URLs without
	// one, the extension recorded in the download cache) picks the file.
	assetNames, err := storage.ListFileNames(assetsDir)
	if err != nil {
		return "", err
	}
	urlExt := strings.ToLower(strings.TrimPrefix(path.Ext(urlBasename(rawURL)), "."))
	var exact []string
	existing := ""
	for _, name := range assetNames {
		if strings.TrimSuffix(name, filepath.Ext(name)) == fileTitle {
			exact = append(exact, name)
			continue
		}
		if existing == "" && strings.Contains(name, fileTitle) {
			existing = name
		}
	}
	if len(exact) > 0 {
		want := urlExt
		if want == "" {
			if cached, ok, err := r.cachedEntry(key); err != nil {
				return "", err
			} else if ok {
				want = strings.TrimPrefix(filepath.Ext(cached), ".")
			}
		}
		existing = exact[0]
		for _, name := range exact {
			if want != "" && strings.EqualFold(strings.TrimPrefix(filepath.Ext(name), "."), want) {
				existing = name
				break
			}
		}
	}
	if existing != "" {
		r.logger.Debug("asset exists already", slog.String("file", existing))
		return existing, nil
	}

	// Present in the download cache.
	if cached, ok, err := r.cachedEntry(key); err != nil {
		return "", err
	} else if ok {
		ext := strings.TrimPrefix(filepath.Ext(cached), ".")
		fileName := fileTitle
		if ext != "" {
			fileName = fileTitle + "." + ext
		}
		r.logger.Debug("asset found in cache", slog.String("file", fileName))
		if err := storage.CopyFile(filepath.Join(r.cacheDir, cached), filepath.Join(assetsDir, fileName)); err != nil {
			return "", err
		}
		return fileName, nil
	}

	// Fresh download.
	r.logger.Info("downloading asset", slog.String("url", rawURL))
	cachePath, ext, err := r.download(ctx, rawURL, key)
	if err != nil {
		return "", err
	}

	if normalizeExts[ext] {
		convPath := filepath.Join(r.cacheDir, key+".jpg")
		if err := r.converter.ConvertImage(ctx, cachePath, convPath); err != nil {
			return "", fmt.Errorf("assets: normalize %s: %w", rawURL, err)
		}
		if err := os.Remove(cachePath); err != nil {
			return "", fmt.Errorf("assets: drop pre-conversion file: %w", err)
		}
		cachePath, ext = convPath, "jpg"
	}

	fileName := fileTitle
	if ext != "" {
		fileName = fileTitle + "." + ext
	}
	if err := storage.CopyFile(cachePath, filepath.Join(assetsDir, fileName)); err != nil {
		return "", err
	}
	return fileName, nil
}

// cachedEntry looks for a cache file whose name stem is exactly key. Partial
// downloads are skipped.
func (r *Resolver) cachedEntry(key string) (string, bool, error) {
	names, err := storage.ListFileNames(r.cacheDir)
	if err != nil {
		return "", false, err
	}
	for _, name := range names {
		if strings.HasSuffix(name, partSuffix) {
			continue
		}
		if strings.TrimSuffix(name, filepath.Ext(name)) == key {
			return name, true, nil
		}
	}
	return "", false, nil
}

// download streams url into the cache under key, deriving the extension from
// the response content type. The body lands in a .part file first and is
// renamed only when fully drained; failures remove the partial file.
func (r *Resolver) download(ctx context.Context, rawURL, key string) (string, string, error) {
	body, contentType, err := r.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return "", "", err
	}
	defer body.Close()

	ext := extFromContentType(contentType)

	partPath := filepath.Join(r.cacheDir, key+partSuffix)
	f, err := os.Create(partPath)
	if err != nil {
		return "", "", fmt.Errorf("assets: create cache file: %w", err)
	}
	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		os.Remove(partPath)
		return "", "", fmt.Errorf("assets: download %s: %w", rawURL, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(partPath)
		return "", "", fmt.Errorf("assets: close cache file: %w", err)
	}

	cacheName := key
	if ext != "" {
		cacheName = key + "." + ext
	}
	cachePath := filepath.Join(r.cacheDir, cacheName)
	if err := os.Rename(partPath, cachePath); err != nil {
		os.Remove(partPath)
		return "", "", fmt.Errorf("assets: finalize cache file: %w", err)
	}
	return cachePath, ext, nil
}

// FileTitle derives the on-disk stem for an asset: slugified title (minus a
// trailing copy of the URL's own extension) or the URL basename, suffixed
// with the first four hex characters of the URL hash to keep similarly
// titled assets apart.
func FileTitle(rawURL, title string) string {
	short := checksum.Short(checksum.URLKey(rawURL))
	base := text.SanitizeFileName(urlBasename(rawURL))
	ext := strings.TrimPrefix(path.Ext(base), ".")

	if title != "" {
		t := text.Slugify(title)
		if ext != "" {
			t = strings.TrimSuffix(t, strings.ToLower(ext))
		}
		t = strings.Trim(t, "-")
		return t + "-" + short
	}
	return strings.TrimSuffix(base, path.Ext(base)) + "-" + short
}

func urlBasename(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		return path.Base(u.Path)
	}
	return path.Base(rawURL)
}

// extFromContentType maps the MIME subtype to a file extension. Unknown
// subtypes pass through verbatim.
func extFromContentType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = contentType
	}
	_, sub, found := strings.Cut(mediaType, "/")
	if !found {
		return ""
	}
	switch sub {
	case "jpeg":
		return "jpg"
	case "quicktime":
		return "mov"
	}
	return sub
}
