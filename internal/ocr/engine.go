// internal/ocr/engine.go
package ocr

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"loan-workers/internal/common/logger"
)

var (
	ErrUnsupportedFormat = errors.New("UNSUPPORTED_IMAGE_FORMAT")
	ErrDecodeFailed      = errors.New("IMAGE_DECODE_FAILED")
	ErrOCRFailed         = errors.New("OCR_FAILED")
)

var supportedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

type Config struct {
	Binary     string
	Language   string
	PSM        int
	TempDir    string
	Preprocess bool
}

// Engine reads text from document images with tesseract.
type Engine struct {
	cfg    Config
	runner Runner
	logger logger.Logger
}

func NewEngine(cfg Config, runner Runner, log logger.Logger) *Engine {
	if cfg.Binary == "" {
		cfg.Binary = "tesseract"
	}
	if cfg.Language == "" {
		cfg.Language = "eng"
	}
	return &Engine{cfg: cfg, runner: runner, logger: log}
}

// ExtractText returns the raw OCR text of the image at path.
func (e *Engine) ExtractText(ctx context.Context, path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !supportedExtensions[ext] {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	input := path
	if e.cfg.Preprocess {
		prepared, cleanup, err := e.prepare(path)
		if err != nil {
			return "", err
		}
		defer cleanup()
		input = prepared
	}

	args := []string{input, "stdout", "-l", e.cfg.Language}
	if e.cfg.PSM > 0 {
		args = append(args, "--psm", strconv.Itoa(e.cfg.PSM))
	}

	out, errb, err := e.runner.Run(ctx, e.cfg.Binary, args...)
	if err != nil {
		return "", fmt.Errorf("%w: %v: %s", ErrOCRFailed, err, truncate(string(errb), 512))
	}

	e.logger.Debug("ocr complete", map[string]interface{}{
		"path":  path,
		"chars": len(out),
	})
	return string(out), nil
}

// prepare writes a binarized copy of the image to a temp PNG.
func (e *Engine) prepare(path string) (string, func(), error) {
	f, err := os.Open(path)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrDecodeFailed, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrDecodeFailed, err)
	}

	out := filepath.Join(e.cfg.TempDir, "ocr-"+uuid.New().String()+".png")
	if e.cfg.TempDir == "" {
		out = filepath.Join(os.TempDir(), filepath.Base(out))
	}

	w, err := os.Create(out)
	if err != nil {
		return "", nil, fmt.Errorf("create temp image: %w", err)
	}
	cleanup := func() { _ = os.Remove(out) }

	if err := png.Encode(w, Preprocess(img)); err != nil {
		w.Close()
		cleanup()
		return "", nil, fmt.Errorf("write temp image: %w", err)
	}
	if err := w.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("write temp image: %w", err)
	}
	return out, cleanup, nil
}
