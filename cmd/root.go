package cmd

import (
	"os"

	"github.com/shaderkit/flatten/cmd/watch"
	"github.com/spf13/cobra"
)

// version is set via build-time ldflags
var version = "dev"

// buildDate is set via build-time ldflags
var buildDate = "unknown"

// commit is set via build-time ldflags
var commit = "unknown"

// baseDir overrides the directory input paths are resolved against
// (default: the executable's directory)
var baseDir string

// rootCmd represents the base command; invoked without a subcommand it runs
// the flatten itself.
var rootCmd = &cobra.Command{
	Use:   "flatten <input_file> [output_file]",
	Short: "Flatten #include directives into a single output stream",
	Long: `Flatten resolves #include "relative/path" directives in a text file
recursively and emits one concatenated output containing each referenced
file's body exactly once, deepest includes first, with directive lines
stripped.

The input path is resolved relative to the flatten binary's own directory
unless --base-dir is given. Output goes to the optional output file, or to
standard output. Warnings about unresolvable includes go to standard error
and do not fail the run.`,
	Version: version,
	Args:    cobra.RangeArgs(1, 2),
	RunE:    runFlatten,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Register subcommands
	rootCmd.AddCommand(graphCmd)
	rootCmd.AddCommand(watch.Cmd)

	// Initialize annotations for version template
	if rootCmd.Annotations == nil {
		rootCmd.Annotations = make(map[string]string)
	}
	rootCmd.Annotations["buildDate"] = buildDate
	rootCmd.Annotations["commit"] = commit

	// Update version field dynamically (in case it was set via ldflags)
	rootCmd.Version = version

	// Customize version template to show additional build info
	rootCmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
Build date: {{printf "%s" (index .Annotations "buildDate")}}
Commit: {{printf "%s" (index .Annotations "commit")}}
`)

	rootCmd.PersistentFlags().StringVar(&baseDir, "base-dir", "", "Directory to resolve the input path against (default: the executable's directory)")
}
