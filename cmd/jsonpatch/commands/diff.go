package commands

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/docshift/jsonpatch"
)

func newDiffCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "diff LEFT RIGHT",
		Short: "Print the RFC 6902 patch that turns LEFT into RIGHT",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			left, err := readDocument(args[0])
			if err != nil {
				return err
			}
			right, err := readDocument(args[1])
			if err != nil {
				return err
			}

			patch, err := jsonpatch.New(left, right)
			if err != nil {
				return err
			}
			log.Debug().Int("operations", len(patch)).Msg("computed patch")

			return writeJSON(os.Stdout, patch)
		},
	}
}
