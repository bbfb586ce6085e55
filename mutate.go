package jsonpatch

import (
	"fmt"
	"slices"

	"github.com/barkimedes/go-deepcopy"
	"github.com/docshift/jsonpatch/jsonpointer"
)

// Helper functions for patch operations. All of them are copy-on-write:
// the input document is never modified, which is what makes Apply
// all-or-nothing without snapshots.

func applyAdd(document any, path string, value any) (any, error) {
	p, err := jsonpointer.New(path)
	if err != nil {
		return nil, translate(err)
	}
	if p.IsRoot() {
		// Adding at the root replaces the whole document.
		return value, nil
	}
	out, err := p.Insert(document, value)
	if err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func applyRemove(document any, path string) (any, error) {
	p, err := jsonpointer.New(path)
	if err != nil {
		return nil, translate(err)
	}
	out, err := p.Remove(document)
	if err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func applyReplace(document any, path string, value any) (any, error) {
	p, err := jsonpointer.New(path)
	if err != nil {
		return nil, translate(err)
	}
	// The target location MUST exist for replace, so resolve it first.
	if _, err := p.Get(document); err != nil {
		return nil, translate(err)
	}
	out, err := p.Set(document, value)
	if err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func applyMove(document any, from, path string) (any, error) {
	fromPtr, err := jsonpointer.New(from)
	if err != nil {
		return nil, translate(err)
	}
	toPtr, err := jsonpointer.New(path)
	if err != nil {
		return nil, translate(err)
	}
	if fromPtr.IsPrefixOf(toPtr) {
		return nil, fmt.Errorf("%w: %q is a prefix of %q", ErrInvalidMoveTarget, from, path)
	}

	val, err := fromPtr.Get(document)
	if err != nil {
		return nil, translate(err)
	}
	if slices.Equal(fromPtr, toPtr) {
		// Moving a value onto itself is a no-op.
		return document, nil
	}

	// Remove before interpreting the destination, so an insertion index
	// within the same array accounts for the shift from the removal.
	removed, err := fromPtr.Remove(document)
	if err != nil {
		return nil, translate(err)
	}
	out, err := toPtr.Insert(removed, val)
	if err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func applyCopy(document any, from, path string) (any, error) {
	fromPtr, err := jsonpointer.New(from)
	if err != nil {
		return nil, translate(err)
	}
	val, err := fromPtr.Get(document)
	if err != nil {
		return nil, translate(err)
	}
	// The copy must be an independent clone: mutating either location
	// afterwards must not show through at the other.
	clone, err := deepcopy.Anything(val)
	if err != nil {
		return nil, fmt.Errorf("failed to clone value at %q: %w", from, err)
	}
	return applyAdd(document, path, clone)
}

func applyTest(document any, path string, expected any) error {
	p, err := jsonpointer.New(path)
	if err != nil {
		return translate(err)
	}
	actual, err := p.Get(document)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTestTargetMissing, err)
	}
	if !Equal(actual, expected) {
		return fmt.Errorf("%w: expected %v at %q, got %v", ErrTestFailed, expected, path, actual)
	}
	return nil
}
