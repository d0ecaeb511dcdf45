package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/shaderkit/flatten/include"
	"github.com/shaderkit/flatten/internal/paths"
	"github.com/spf13/cobra"
)

func runFlatten(cmd *cobra.Command, args []string) error {
	diag := cmd.ErrOrStderr()

	state, err := resolveRoot(args[0], diag)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(args) == 2 {
		file, err := os.Create(args[1])
		if err != nil {
			return fmt.Errorf("failed to open output file %s: %w", args[1], err)
		}
		defer file.Close()
		out = file
	}

	return include.NewFlattener(diag).Flatten(state, out)
}

// resolveRoot canonicalizes the input argument and walks its include graph.
// A failed canonicalization is fatal; a failed resolve is reported and the
// partial state is still returned so a best-effort output can be produced.
func resolveRoot(inputArg string, diag io.Writer) (*include.State, error) {
	resolver, err := paths.NewResolver(baseDir)
	if err != nil {
		return nil, err
	}

	inputPath, err := resolver.Resolve(inputArg)
	if err != nil {
		return nil, err
	}

	state := include.NewState()
	if err := include.NewResolver(diag).Resolve(state, inputPath, filepath.Dir(inputPath), 0); err != nil {
		fmt.Fprintf(diag, "Warning: resolution incomplete: %v\n", err)
	}
	return state, nil
}
