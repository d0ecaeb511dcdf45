package cmd

import (
	"fmt"

	"github.com/shaderkit/flatten/include"
	"github.com/spf13/cobra"
)

var graphFormat string

// graphCmd prints the include graph without flattening.
var graphCmd = &cobra.Command{
	Use:   "graph <input_file>",
	Short: "Print the include graph without flattening",
	Long: `Resolve the include graph of a file and print it instead of emitting
flattened content. Node labels carry each file's deepest recorded include
depth, which is the emission order key.

Output formats:
  - dot: Graphviz DOT format for visualization (default)
  - json: JSON format

Example usage:
  flatten graph shader.wgsl
  flatten graph shader.wgsl --format=json | jq '.files[].depth'
  flatten graph shader.wgsl | dot -Tsvg -o includes.svg`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		state, err := resolveRoot(args[0], cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		var output string
		switch graphFormat {
		case "dot":
			output, err = include.ToDOT(state)
		case "json":
			output, err = include.ToJSON(state)
		default:
			return fmt.Errorf("unsupported format: %s (supported: dot, json)", graphFormat)
		}
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), output)
		return nil
	},
}

func init() {
	graphCmd.Flags().StringVarP(&graphFormat, "format", "f", "dot", "Output format (dot, json)")
}
