// Package testutil provides shared fakes and helpers for pipeline tests.
package testutil

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Logger returns a discarding slog logger for tests.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Response is one canned download served by FakeFetcher.
type Response struct {
	Body        string
	ContentType string
}

// FakeFetcher serves canned responses keyed by URL and counts calls.
type FakeFetcher struct {
	Responses map[string]Response

	mu    sync.Mutex
	calls map[string]int
}

// Fetch returns the canned response for url or an error for unknown URLs.
func (f *FakeFetcher) Fetch(_ context.Context, url string) (io.ReadCloser, string, error) {
	f.mu.Lock()
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[url]++
	f.mu.Unlock()

	resp, ok := f.Responses[url]
	if !ok {
		return nil, "", fmt.Errorf("testutil: no canned response for %s", url)
	}
	return io.NopCloser(strings.NewReader(resp.Body)), resp.ContentType, nil
}

// Calls returns how many times url was fetched.
func (f *FakeFetcher) Calls(url string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[url]
}

// TotalCalls returns the number of fetches across all URLs.
func (f *FakeFetcher) TotalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

// FakeTranscoder writes marker files instead of invoking real tools.
type FakeTranscoder struct {
	mu          sync.Mutex
	ImageCalls  int
	VideoCalls  int
	PosterCalls int
}

// ConvertImage writes a marker image file to dst.
func (f *FakeTranscoder) ConvertImage(_ context.Context, _, dst string) error {
	f.mu.Lock()
	f.ImageCalls++
	f.mu.Unlock()
	return os.WriteFile(dst, []byte("converted-image"), 0o644)
}

// TranscodeVideo writes a marker video file to dst.
func (f *FakeTranscoder) TranscodeVideo(_ context.Context, src, dst string) error {
	f.mu.Lock()
	f.VideoCalls++
	f.mu.Unlock()
	return os.WriteFile(dst, []byte("transcoded:"+src), 0o644)
}

// ExtractPosterFrame writes a marker poster file to dst.
func (f *FakeTranscoder) ExtractPosterFrame(_ context.Context, src, dst string) error {
	f.mu.Lock()
	f.PosterCalls++
	f.mu.Unlock()
	return os.WriteFile(dst, []byte("poster:"+src), 0o644)
}
