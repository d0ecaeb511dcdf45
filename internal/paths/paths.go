// Package paths resolves user-provided input paths against a base directory.
//
// The flattener's contract resolves the input file argument against the
// running binary's own directory rather than the process working directory,
// so shader bundles shipped next to the binary flatten the same way from any
// shell. The base is overridable for scripted use.
package paths

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/shaderkit/flatten/include"
)

// Resolver resolves raw user paths relative to a configured base directory.
type Resolver struct {
	baseDir string
}

// NewResolver creates a Resolver. An empty baseDir selects the directory
// containing the running executable.
func NewResolver(baseDir string) (Resolver, error) {
	if baseDir == "" {
		exe, err := os.Executable()
		if err != nil {
			return Resolver{}, fmt.Errorf("failed to locate executable: %w", err)
		}
		baseDir = filepath.Dir(exe)
	}

	absBaseDir, err := filepath.Abs(baseDir)
	if err != nil {
		return Resolver{}, fmt.Errorf("failed to resolve base path: %w", err)
	}

	return Resolver{baseDir: filepath.Clean(absBaseDir)}, nil
}

// BaseDir returns the directory raw paths are joined against.
func (r Resolver) BaseDir() string {
	return r.baseDir
}

// Resolve maps a raw user path to its canonical absolute form. Absolute
// inputs bypass the base directory. Canonicalization failure is an error:
// the input file is the one path that must exist.
func (r Resolver) Resolve(raw string) (string, error) {
	if raw == "" {
		return "", fmt.Errorf("path cannot be empty")
	}

	candidate := raw
	if !filepath.IsAbs(candidate) {
		candidate = filepath.Join(r.baseDir, raw)
	}

	canonical, err := include.Canonicalize(candidate)
	if err != nil {
		return "", fmt.Errorf("failed to resolve canonical path for input file %s: %w", raw, err)
	}
	return canonical, nil
}
