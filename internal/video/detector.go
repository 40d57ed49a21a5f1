// internal/video/detector.go
package video

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"strings"

	"loan-workers/internal/ocr"
)

type FaceDetector interface {
	DetectFaces(ctx context.Context, framePath string) (int, error)
}

// CommandDetector runs an external face detector that prints one line per
// detected face (e.g. "x y w h") and nothing when there is none.
type CommandDetector struct {
	binary string
	args   []string
	runner ocr.Runner
}

func NewCommandDetector(binary string, args []string, runner ocr.Runner) *CommandDetector {
	if binary == "" {
		binary = "facedetect"
	}
	return &CommandDetector{binary: binary, args: args, runner: runner}
}

func (d *CommandDetector) DetectFaces(ctx context.Context, framePath string) (int, error) {
	args := append(append([]string{}, d.args...), framePath)

	out, errb, err := d.runner.Run(ctx, d.binary, args...)
	if err != nil {
		return 0, fmt.Errorf("face detector: %w: %s", err, errb)
	}

	faces := 0
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) != "" {
			faces++
		}
	}
	if err := sc.Err(); err != nil {
		return 0, fmt.Errorf("read face detector output: %w", err)
	}
	return faces, nil
}
