// Package jsonpatch applies RFC 6902 JSON Patch documents to in-memory
// value trees (map[string]any, []any, string, float64, bool, nil).
//
// Application is atomic: operations run strictly in order and the first
// failure aborts the whole patch. The mutators are copy-on-write, so on
// failure the caller still holds the original, untouched document and
// receives a *PatchError naming the failing operation.
package jsonpatch

import (
	"encoding/json"
	"fmt"
	"io"
)

// Op represents JSON Patch operation types
type Op string

const (
	Add     Op = "add"
	Remove  Op = "remove"
	Replace Op = "replace"
	Move    Op = "move"
	Copy    Op = "copy"
	Test    Op = "test"
)

// Operation represents a single JSON Patch operation
type Operation struct {
	Op    Op     `json:"op"`
	Path  string `json:"path"`
	From  string `json:"from,omitempty"`
	Value any    `json:"value,omitempty"`
}

// Patch represents a collection of JSON Patch operations
type Patch []Operation

// Apply applies a series of JSON Patch operations to a document, returning a new
// modified document. The original document is never changed: mutations are
// copy-on-write, sharing every untouched subtree with the input. If any
// operation fails the returned error is a *PatchError identifying the
// operation index and failure kind, and the input document is intact.
func Apply(document any, patch Patch) (any, error) {
	working := document
	for i, op := range patch {
		next, err := applyOp(working, op)
		if err != nil {
			return nil, &PatchError{Index: i, Op: op.Op, Path: op.Path, Err: err}
		}
		working = next
	}

	return working, nil
}

// applyOp dispatches a single operation against the working document.
func applyOp(document any, op Operation) (any, error) {
	switch op.Op {
	case Add:
		return applyAdd(document, op.Path, op.Value)
	case Remove:
		return applyRemove(document, op.Path)
	case Replace:
		return applyReplace(document, op.Path, op.Value)
	case Move:
		return applyMove(document, op.From, op.Path)
	case Copy:
		return applyCopy(document, op.From, op.Path)
	case Test:
		return document, applyTest(document, op.Path, op.Value)
	default:
		// Record validation belongs to the caller, but an unknown op
		// would otherwise be silently skipped, so reject it here too.
		return nil, fmt.Errorf("unsupported patch operation: %q", op.Op)
	}
}

// ApplyStream applies a series of JSON Patch operations from a reader to a writer.
func ApplyStream(reader io.Reader, writer io.Writer, patch Patch) error {
	var doc any
	decoder := json.NewDecoder(reader)
	if err := decoder.Decode(&doc); err != nil {
		return fmt.Errorf("failed to decode document: %w", err)
	}

	modifiedDoc, err := Apply(doc, patch)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(writer)
	return encoder.Encode(modifiedDoc)
}
