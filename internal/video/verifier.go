// internal/video/verifier.go
package video

import (
	"context"
	"path/filepath"
	"strings"

	"loan-workers/internal/common/logger"
)

var DefaultFormats = []string{"mp4", "webm", "mov"}

// Verifier decides whether a recorded answer shows a face. It only checks
// that the first frame contains at least one face; it does not match identity.
type Verifier struct {
	frames   *FrameExtractor
	detector FaceDetector
	formats  map[string]bool
	logger   logger.Logger
}

func NewVerifier(frames *FrameExtractor, detector FaceDetector, formats []string, log logger.Logger) *Verifier {
	if len(formats) == 0 {
		formats = DefaultFormats
	}
	allowed := make(map[string]bool, len(formats))
	for _, f := range formats {
		allowed[strings.ToLower(strings.TrimPrefix(f, "."))] = true
	}
	return &Verifier{frames: frames, detector: detector, formats: allowed, logger: log}
}

// Supported reports whether path has an accepted video extension.
func (v *Verifier) Supported(path string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	return v.formats[ext]
}

// VerifyFace never fails: any problem is logged and reported as no face.
func (v *Verifier) VerifyFace(ctx context.Context, videoPath string) bool {
	log := v.logger.WithFields(map[string]interface{}{"videoPath": videoPath})

	if !v.Supported(videoPath) {
		log.Warn("unsupported video format", nil)
		return false
	}

	frame, cleanup, err := v.frames.FirstFrame(ctx, videoPath)
	if err != nil {
		log.Warn("frame extraction failed", map[string]interface{}{"error": err.Error()})
		return false
	}
	defer cleanup()

	faces, err := v.detector.DetectFaces(ctx, frame)
	if err != nil {
		log.Warn("face detection failed", map[string]interface{}{"error": err.Error()})
		return false
	}

	log.Debug("face detection complete", map[string]interface{}{"faces": faces})
	return faces > 0
}
