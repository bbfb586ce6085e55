package commands

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/docshift/jsonpatch"
)

func newTestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "test DOCUMENT PATCH",
		Short: "Check whether a patch applies cleanly, without printing the result",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(args[0])
			if err != nil {
				return err
			}
			patch, err := readPatch(args[1])
			if err != nil {
				return err
			}

			if _, err := jsonpatch.Apply(doc, patch); err != nil {
				var patchErr *jsonpatch.PatchError
				if errors.As(err, &patchErr) {
					return fmt.Errorf("patch does not apply: operation %d (%s %q): %w",
						patchErr.Index, patchErr.Op, patchErr.Path, patchErr.Err)
				}
				return err
			}

			log.Info().Int("operations", len(patch)).Msg("patch applies cleanly")
			return nil
		},
	}
}
