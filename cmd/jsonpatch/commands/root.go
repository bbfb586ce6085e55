package commands

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var verbose bool

// Execute runs the root command
func Execute(version, commit string) error {
	return newRootCommand(version, commit).Execute()
}

func newRootCommand(version, commit string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "jsonpatch",
		Short: "Apply, generate and test RFC 6902 JSON patches",
		Long: `jsonpatch works with RFC 6902 patch documents against JSON or YAML files.

Documents and patches are read from files by extension (.yaml/.yml as
YAML, anything else as JSON); "-" reads JSON from stdin.`,
		Version: fmt.Sprintf("%s (commit: %s)", version, commit),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(newApplyCommand())
	rootCmd.AddCommand(newDiffCommand())
	rootCmd.AddCommand(newTestCommand())

	return rootCmd
}
