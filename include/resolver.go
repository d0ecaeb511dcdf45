package include

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// directivePrefix is the only include form recognized during resolution:
// the directive must start the line, with no leading whitespace tolerance.
const directivePrefix = `#include "`

// earlyStopLimit bounds scanning: once this many consecutive non-directive
// lines have been read, the rest of the file is skipped. Includes are assumed
// to cluster near the top, so a directive buried further down is silently
// ignored. This trade-off is deliberate and relied upon; do not widen the scan.
const earlyStopLimit = 5

// Resolver walks the include graph depth-first from a root file, recording
// each distinct file into a State together with the deepest depth at which it
// was reached. Warnings (malformed directives, canonicalization failures) go
// to the diagnostic writer and never abort the walk.
type Resolver struct {
	diag io.Writer
}

// NewResolver creates a Resolver that writes diagnostics to diag.
// A nil diag defaults to os.Stderr.
func NewResolver(diag io.Writer) *Resolver {
	if diag == nil {
		diag = os.Stderr
	}
	return &Resolver{diag: diag}
}

// Resolve scans filePath for include directives, resolving each one relative
// to baseDir and recursing one level deeper. The root call uses depth 0 and
// baseDir set to the root file's directory.
//
// Revisit policy: a file already recorded at a shallower depth has its depth
// raised and is not rescanned (its own includes were fully resolved on the
// first visit; only the ordering bookkeeping changes). A file revisited at
// the same or a shallower depth is rescanned. The rescan branch can re-expand
// convergent include graphs; stack depth is bounded only by this rule.
//
// A failed open fails the whole ancestor chain: each frame erases its own
// State entry on the way up, but entries recorded for sibling branches that
// already completed are kept.
func (r *Resolver) Resolve(state *State, filePath, baseDir string, depth int) error {
	if recorded, ok := state.Depth(filePath); ok {
		if recorded < depth {
			state.Visit(filePath, depth)
			return nil
		}
	} else {
		state.Visit(filePath, depth)
	}

	file, err := os.Open(filePath)
	if err != nil {
		fmt.Fprintf(r.diag, "Error: could not open file: %s\n", filePath)
		state.Forget(filePath)
		return fmt.Errorf("failed to open %s: %w", filePath, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	linesWithoutMatch := 0
	for linesWithoutMatch < earlyStopLimit && scanner.Scan() {
		line := scanner.Text()

		if !strings.HasPrefix(line, directivePrefix) {
			linesWithoutMatch++
			continue
		}

		rest := line[len(directivePrefix):]
		closingQuote := strings.IndexByte(rest, '"')
		if closingQuote < 0 {
			// Malformed directives neither reset nor advance the
			// early-stop counter.
			fmt.Fprintf(r.diag, "Warning: malformed #include directive in %s: %s\n", filePath, line)
			continue
		}

		name := rest[:closingQuote]
		candidate := filepath.Join(baseDir, name)
		canonical, err := Canonicalize(candidate)
		if err != nil {
			fmt.Fprintf(r.diag, "Warning: %v\n", err)
			canonical = candidate
		}

		state.AddEdge(filePath, canonical)
		if err := r.Resolve(state, canonical, filepath.Dir(canonical), depth+1); err != nil {
			state.Forget(filePath)
			return err
		}
		linesWithoutMatch = 0
	}

	if err := scanner.Err(); err != nil {
		state.Forget(filePath)
		return fmt.Errorf("failed to read %s: %w", filePath, err)
	}

	return nil
}
