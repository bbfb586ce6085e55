package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/docshift/jsonpatch"
)

func newApplyCommand() *cobra.Command {
	var showDiff bool

	cmd := &cobra.Command{
		Use:   "apply DOCUMENT PATCH",
		Short: "Apply a patch to a document and print the result",
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
			log.Debug().Int("operations", len(patch)).Str("document", args[0]).Msg("applying patch")

			result, err := jsonpatch.Apply(doc, patch)
			if err != nil {
				var patchErr *jsonpatch.PatchError
				if errors.As(err, &patchErr) {
					log.Error().
						Int("operation", patchErr.Index).
						Str("op", string(patchErr.Op)).
						Str("path", patchErr.Path).
						Msg("patch failed")
				}
				return err
			}

			if showDiff {
				return printDiff(doc, result)
			}
			return writeJSON(os.Stdout, result)
		},
	}

	cmd.Flags().BoolVar(&showDiff, "diff", false, "print a text diff of the document instead of the result")

	return cmd
}

// printDiff renders a character-level diff of the pretty-printed
// before/after documents.
func printDiff(before, after any) error {
	beforeJSON, err := json.MarshalIndent(before, "", "  ")
	if err != nil {
		return err
	}
	afterJSON, err := json.MarshalIndent(after, "", "  ")
	if err != nil {
		return err
	}

	dmp := diffpatch.New()
	diffs := dmp.DiffMain(string(beforeJSON), string(afterJSON), true)
	diffs = dmp.DiffCleanupSemantic(diffs)
	fmt.Println(dmp.DiffPrettyText(diffs))
	return nil
}
