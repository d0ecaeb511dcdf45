package include

import (
	"fmt"
	"path/filepath"
)

// Canonicalize maps path to its unique symlink-resolved absolute form.
// It fails when the path (or a parent of it) does not exist.
func Canonicalize(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path for %s: %w", path, err)
	}

	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve canonical path for %s: %w", path, err)
	}

	return filepath.Clean(resolved), nil
}
