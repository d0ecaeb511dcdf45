package include

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Flattener emits the bodies of every file a Resolver recorded, deepest files
// first, to a single output stream. Directive lines are stripped.
type Flattener struct {
	diag io.Writer
}

// NewFlattener creates a Flattener that writes diagnostics to diag.
// A nil diag defaults to os.Stderr.
func NewFlattener(diag io.Writer) *Flattener {
	if diag == nil {
		diag = os.Stderr
	}
	return &Flattener{diag: diag}
}

// Flatten writes the concatenated bodies of state's files to w in depth
// order, deepest first. Any line containing "#include" anywhere in it is
// dropped. A file that cannot be opened at this stage is skipped with a
// warning; the remaining files are still emitted.
func (f *Flattener) Flatten(state *State, w io.Writer) error {
	out := bufio.NewWriter(w)

	for _, visited := range state.Ordered() {
		file, err := os.Open(visited.Path)
		if err != nil {
			fmt.Fprintf(f.diag, "Error: could not open input file: %s\n", visited.Path)
			continue
		}

		if err := appendBody(file, out); err != nil {
			fmt.Fprintf(f.diag, "Error: failed to read %s: %v\n", visited.Path, err)
		}
		file.Close()
	}

	if err := out.Flush(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// appendBody streams file to out, dropping every line that mentions an
// include directive.
func appendBody(file io.Reader, out *bufio.Writer) error {
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.Contains(line, "#include") {
			continue
		}
		out.WriteString(line)
		out.WriteByte('\n')
	}
	return scanner.Err()
}
