package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/shaderkit/flatten/include"
)

const debounceInterval = 300 * time.Millisecond

// session holds one watch run's fixed inputs and the paths discovered by the
// most recent resolution.
type session struct {
	inputPath  string
	outputPath string
	diag       io.Writer

	watchedPaths map[string]bool
}

// reflatten re-resolves the include graph from scratch and rewrites the
// output file. Resolution failures are reported but still produce a
// best-effort output; only an unwritable output file is an error.
func (s *session) reflatten() error {
	state := include.NewState()
	resolver := include.NewResolver(s.diag)
	if err := resolver.Resolve(state, s.inputPath, filepath.Dir(s.inputPath), 0); err != nil {
		fmt.Fprintf(s.diag, "Warning: resolution incomplete: %v\n", err)
	}

	out, err := os.Create(s.outputPath)
	if err != nil {
		return fmt.Errorf("failed to open output file %s: %w", s.outputPath, err)
	}
	defer out.Close()

	if err := include.NewFlattener(s.diag).Flatten(state, out); err != nil {
		return err
	}

	s.watchedPaths = make(map[string]bool, state.Len())
	for _, visited := range state.Ordered() {
		s.watchedPaths[visited.Path] = true
	}
	return nil
}

// watchDirs returns the unique directories containing the most recently
// resolved files, sorted for stable watch registration.
func (s *session) watchDirs() []string {
	seen := make(map[string]bool)
	var dirs []string
	for path := range s.watchedPaths {
		dir := filepath.Dir(path)
		if seen[dir] {
			continue
		}
		seen[dir] = true
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	return dirs
}

func watchAndFlatten(ctx context.Context, s *session) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := addWatchDirs(watcher, s.watchDirs()); err != nil {
		return fmt.Errorf("failed to watch directories: %w", err)
	}

	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !s.isRelevantChange(event) {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounceInterval, func() {
				if err := s.reflatten(); err != nil {
					fmt.Fprintf(s.diag, "flatten error: %v\n", err)
					return
				}
				// New includes may live in directories not yet
				// watched; stale watches are harmless.
				if err := addWatchDirs(watcher, s.watchDirs()); err != nil {
					fmt.Fprintf(s.diag, "watch update error: %v\n", err)
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(s.diag, "watcher error: %v\n", err)
		}
	}
}

// isRelevantChange reports whether event should trigger a re-flatten. Writes
// to the output file itself are ignored so rewriting it does not feed back
// into the watcher.
func (s *session) isRelevantChange(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}

	if outputAbs, err := filepath.Abs(s.outputPath); err == nil {
		if eventAbs, err := filepath.Abs(event.Name); err == nil && eventAbs == outputAbs {
			return false
		}
	}
	return true
}

// addWatchDirs registers dirs with the watcher, ignoring directories that
// disappeared between resolution and registration.
func addWatchDirs(watcher *fsnotify.Watcher, dirs []string) error {
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}
	return nil
}
