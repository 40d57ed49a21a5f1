// internal/storage/paths.go
package storage

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var ErrOutsideUploadDir = errors.New("PATH_OUTSIDE_UPLOAD_DIR")

// Resolve maps a file path from job variables onto the upload directory.
// Absolute paths must already live under uploadDir; relative ones may not
// climb out of it.
func Resolve(uploadDir, p string) (string, error) {
	if strings.TrimSpace(p) == "" {
		return "", fmt.Errorf("%w: empty path", ErrOutsideUploadDir)
	}

	base, err := filepath.Abs(uploadDir)
	if err != nil {
		return "", fmt.Errorf("resolve upload dir: %w", err)
	}

	target := p
	if !filepath.IsAbs(target) {
		target = filepath.Join(base, target)
	}
	target = filepath.Clean(target)

	rel, err := filepath.Rel(base, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideUploadDir, p)
	}
	return target, nil
}
