// internal/video/frames.go
package video

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"loan-workers/internal/ocr"
)

// FrameExtractor pulls still frames out of a video with ffmpeg.
type FrameExtractor struct {
	binary  string
	tempDir string
	runner  ocr.Runner
}

func NewFrameExtractor(binary, tempDir string, runner ocr.Runner) *FrameExtractor {
	if binary == "" {
		binary = "ffmpeg"
	}
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	return &FrameExtractor{binary: binary, tempDir: tempDir, runner: runner}
}

// FirstFrame writes the first frame of videoPath to a temp PNG. The caller
// must call cleanup once done with the file.
func (f *FrameExtractor) FirstFrame(ctx context.Context, videoPath string) (string, func(), error) {
	out := filepath.Join(f.tempDir, "frame-"+uuid.New().String()+".png")
	cleanup := func() { _ = os.Remove(out) }

	_, errb, err := f.runner.Run(ctx, f.binary,
		"-hide_banner", "-loglevel", "error",
		"-y", "-i", videoPath,
		"-frames:v", "1",
		out,
	)
	if err != nil {
		cleanup()
		return "", nil, fmt.Errorf("ffmpeg first frame: %w: %s", err, errb)
	}
	if _, err := os.Stat(out); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("ffmpeg produced no frame: %w", err)
	}
	return out, cleanup, nil
}
