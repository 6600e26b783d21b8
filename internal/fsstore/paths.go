package fsstore

import (
	"fmt"
	"path/filepath"
	"strings"
)

// normalizePath cleans a state file path. State files are always addressed
// explicitly; an empty path is a caller bug, not a default.
func normalizePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	return filepath.Clean(path), nil
}
