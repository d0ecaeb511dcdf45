package watch

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/shaderkit/flatten/internal/paths"
	"github.com/spf13/cobra"
)

// Cmd represents the watch command.
var Cmd = NewCommand()

// NewCommand returns a new watch command instance.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <input_file> <output_file>",
		Short: "Re-flatten the include graph whenever a referenced file changes",
		Long: `Resolve the include graph once, write the flattened output, then keep
watching every referenced file's directory and rewrite the output whenever
one of them changes. An explicit output file is required because the output
is rewritten in place on every change.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args)
		},
	}

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	baseDir, err := cmd.Flags().GetString("base-dir")
	if err != nil {
		baseDir = ""
	}

	resolver, err := paths.NewResolver(baseDir)
	if err != nil {
		return err
	}

	inputPath, err := resolver.Resolve(args[0])
	if err != nil {
		return err
	}

	s := &session{
		inputPath:  inputPath,
		outputPath: args[1],
		diag:       cmd.ErrOrStderr(),
	}

	// First flatten happens before watching starts so a broken output path
	// fails fast.
	if err := s.reflatten(); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	fmt.Fprintf(cmd.OutOrStdout(), "Watching includes of %s\n", inputPath)
	fmt.Fprintf(cmd.OutOrStdout(), "Writing %s\n", s.outputPath)
	fmt.Fprintf(cmd.OutOrStdout(), "Press Ctrl+C to stop\n")

	return watchAndFlatten(ctx, s)
}
