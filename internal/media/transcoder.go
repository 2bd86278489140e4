// Package media derives video variants and poster frames for imported
// assets, reusing a content-hash-keyed cache so each source file is
// transcoded at most once across runs.
package media

import (
	"context"
	"fmt"
	"os/exec"
	"time"
)

// Transcoder is the external conversion capability. Implementations perform
// the actual codec work; the orchestrator only decides when to invoke them.
type Transcoder interface {
	// ConvertImage converts src into dst, format chosen by dst's extension.
	ConvertImage(ctx context.Context, src, dst string) error
	// TranscodeVideo remuxes src into dst, container chosen by dst's extension.
	TranscodeVideo(ctx context.Context, src, dst string) error
	// ExtractPosterFrame writes a single frame of src to dst.
	ExtractPosterFrame(ctx context.Context, src, dst string) error
}

// ToolTranscoder shells out to ffmpeg and imagemagick. Timeout bounds each
// invocation so a hung external process cannot stall the run.
type ToolTranscoder struct {
	Timeout time.Duration
}

// ConvertImage runs imagemagick convert.
func (t ToolTranscoder) ConvertImage(ctx context.Context, src, dst string) error {
	return t.run(ctx, "convert", src, dst)
}

// TranscodeVideo remuxes the container with stream copy, which covers
// MOV/MP4 with H.264+AAC payloads without a re-encode.
func (t ToolTranscoder) TranscodeVideo(ctx context.Context, src, dst string) error {
	return t.run(ctx, "ffmpeg", "-i", src, "-c", "copy", "-movflags", "+faststart", dst)
}

// ExtractPosterFrame grabs one frame at the one-second mark.
func (t ToolTranscoder) ExtractPosterFrame(ctx context.Context, src, dst string) error {
	return t.run(ctx, "ffmpeg", "-i", src, "-ss", "00:00:01", "-vframes", "1", dst)
}

func (t ToolTranscoder) run(ctx context.Context, name string, args ...string) error {
	if t.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.Timeout)
		defer cancel()
	}
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("media: %s: %w: %s", name, err, out)
	}
	return nil
}
