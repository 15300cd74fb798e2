package media

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const maxUploadBytes = 10 << 20 // 10 MiB

var allowedImageMimes = map[string]struct{}{
	"image/jpeg":    {},
	"image/png":     {},
	"image/gif":     {},
	"image/webp":    {},
	"image/avif":    {},
	"image/svg+xml": {},
}

// buildFileName generates a collision-resistant filename that preserves the
// original extension.
func buildFileName(original string) string {
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(original)))
	if ext == "" || len(ext) > 10 {
		ext = ".dat"
	}
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:18] + ext
}

// validateImage sniffs the payload's real MIME type and checks it against the
// image allowlist and the size limit. Returns the detected MIME type.
func validateImage(filename string, data []byte) (string, error) {
	if len(data) > maxUploadBytes {
		return "", fmt.Errorf("file exceeds %d MB limit", maxUploadBytes>>20)
	}

	detected := mimetype.Detect(data)
	mimeType := strings.ToLower(strings.TrimSpace(detected.String()))
	if idx := strings.Index(mimeType, ";"); idx > 0 {
		mimeType = strings.TrimSpace(mimeType[:idx])
	}

	if _, ok := allowedImageMimes[mimeType]; !ok {
		return "", fmt.Errorf("unsupported file type %q for %s", mimeType, filepath.Base(filename))
	}
	return mimeType, nil
}
