package jsonpatch

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/barkimedes/go-deepcopy"
	"github.com/docshift/jsonpatch/jsonpointer"
)

// Diff is a patch that has been validated against a concrete document
// and paired with its exact inverse. Apply and Revert are ordinary
// atomic patch applications; Revert(Apply(doc)) reproduces doc for any
// document the Diff was prepared against.
type Diff struct {
	forward Patch
	inverse Patch
}

// Prepare validates patch against document and materializes an inverse
// for every operation: append positions ("-") are pinned to concrete
// indices and values shadowed by add/replace/remove/move are captured
// as independent deep copies, so the Diff stays valid however the
// caller later mutates the document. An operation may invert to more
// than one inverse operation (a move that overwrote an object member
// needs both the reverse move and a restoring add), so the inverse can
// be longer than the forward patch.
func Prepare(document any, patch Patch) (*Diff, error) {
	forward := append(Patch(nil), patch...)
	groups := make([]Patch, 0, len(patch))
	working := document

	for i, op := range patch {
		next, err := applyOp(working, op)
		if err != nil {
			return nil, &PatchError{Index: i, Op: op.Op, Path: op.Path, Err: err}
		}
		inv, err := invertOp(working, next, op)
		if err != nil {
			return nil, &PatchError{Index: i, Op: op.Op, Path: op.Path, Err: err}
		}
		groups = append(groups, inv)
		working = next
	}

	// The inverse undoes operations in reverse order; the ops within one
	// group keep their order.
	inverse := make(Patch, 0, len(patch))
	for g := len(groups) - 1; g >= 0; g-- {
		inverse = append(inverse, groups[g]...)
	}

	return &Diff{forward: forward, inverse: inverse}, nil
}

// Forward returns the operations Apply will run.
func (d *Diff) Forward() Patch { return d.forward }

// Inverse returns the operations Revert will run.
func (d *Diff) Inverse() Patch { return d.inverse }

// Apply runs the prepared patch against a document.
func (d *Diff) Apply(document any) (any, error) {
	return Apply(document, d.forward)
}

// Revert undoes the prepared patch against a document that Apply
// produced.
func (d *Diff) Revert(document any) (any, error) {
	return Apply(document, d.inverse)
}

// invertOp derives the inverse of op. before is the document state the
// operation ran against and after the state it produced; op is known to
// have applied cleanly.
func invertOp(before, after any, op Operation) (Patch, error) {
	switch op.Op {
	case Add, Copy:
		inv, err := invertInsertion(before, op)
		if err != nil {
			return nil, err
		}
		return Patch{inv}, nil
	case Remove:
		old, err := captureValue(before, op.Path)
		if err != nil {
			return nil, err
		}
		return Patch{{Op: Add, Path: op.Path, Value: old}}, nil
	case Replace:
		old, err := captureValue(before, op.Path)
		if err != nil {
			return nil, err
		}
		return Patch{{Op: Replace, Path: op.Path, Value: old}}, nil
	case Move:
		dest, err := concreteDestination(after, op.Path)
		if err != nil {
			return nil, err
		}
		inv := Patch{{Op: Move, From: dest, Path: op.From}}
		// A move onto an existing object member overwrites it, so the
		// reverse move alone leaves that member gone. Capture the
		// shadowed value and restore it after the value has moved back.
		shadow, found, err := moveShadowedValue(before, op)
		if err != nil {
			return nil, err
		}
		if found {
			inv = append(inv, Operation{Op: Add, Path: op.Path, Value: shadow})
		}
		return inv, nil
	case Test:
		// test has no effect, so it is its own inverse.
		return Patch{op}, nil
	default:
		return nil, fmt.Errorf("unsupported patch operation: %q", op.Op)
	}
}

// moveShadowedValue returns a deep copy of the object member a move
// operation destroyed at its destination, if there was one. Array
// destinations insert rather than overwrite and never shadow anything.
// The destination is resolved against the document with the source
// already removed, matching the order applyMove works in.
func moveShadowedValue(before any, op Operation) (any, bool, error) {
	fromPtr, err := jsonpointer.New(op.From)
	if err != nil {
		return nil, false, translate(err)
	}
	toPtr, err := jsonpointer.New(op.Path)
	if err != nil {
		return nil, false, translate(err)
	}
	if toPtr.IsRoot() || slices.Equal(fromPtr, toPtr) {
		// from == path applied as a no-op, so there is nothing to undo.
		return nil, false, nil
	}

	removed, err := fromPtr.Remove(before)
	if err != nil {
		return nil, false, translate(err)
	}
	parentVal, err := toPtr.Parent().Get(removed)
	if err != nil {
		return nil, false, translate(err)
	}
	parent, ok := parentVal.(map[string]any)
	if !ok {
		return nil, false, nil
	}
	old, ok := parent[toPtr.Last()]
	if !ok {
		return nil, false, nil
	}
	clone, err := cloneValue(old)
	if err != nil {
		return nil, false, err
	}
	return clone, true, nil
}

// invertInsertion undoes the add implied by an add or copy operation:
// a remove of the inserted element, or a re-add of the object member or
// root document the insertion shadowed.
func invertInsertion(before any, op Operation) (Operation, error) {
	p, err := jsonpointer.New(op.Path)
	if err != nil {
		return Operation{}, translate(err)
	}
	if p.IsRoot() {
		old, err := cloneValue(before)
		if err != nil {
			return Operation{}, err
		}
		return Operation{Op: Add, Path: "", Value: old}, nil
	}

	parentVal, err := p.Parent().Get(before)
	if err != nil {
		return Operation{}, translate(err)
	}
	switch parent := parentVal.(type) {
	case map[string]any:
		if old, ok := parent[p.Last()]; ok {
			// add on an existing member acts as set, so undo is a re-add
			// of the shadowed value.
			clone, err := cloneValue(old)
			if err != nil {
				return Operation{}, err
			}
			return Operation{Op: Add, Path: op.Path, Value: clone}, nil
		}
		return Operation{Op: Remove, Path: op.Path}, nil
	case []any:
		idx := len(parent)
		if tok := p.Last(); tok != "-" {
			idx, err = jsonpointer.ParseArrayIndex(tok)
			if err != nil {
				return Operation{}, translate(err)
			}
		}
		concrete := jsonpointer.Append(p.Parent().String(), strconv.Itoa(idx))
		return Operation{Op: Remove, Path: concrete}, nil
	default:
		return Operation{}, fmt.Errorf("%w: parent of %q is not a container", ErrPathNotFound, op.Path)
	}
}

// concreteDestination rewrites a "-" append target to the index the
// value actually landed at, resolved against the post-operation state.
func concreteDestination(after any, path string) (string, error) {
	p, err := jsonpointer.New(path)
	if err != nil {
		return "", translate(err)
	}
	if p.IsRoot() || p.Last() != "-" {
		return path, nil
	}
	parentVal, err := p.Parent().Get(after)
	if err != nil {
		return "", translate(err)
	}
	arr, ok := parentVal.([]any)
	if !ok {
		return "", fmt.Errorf("%w: parent of %q is not an array", ErrPathNotFound, path)
	}
	return jsonpointer.Append(p.Parent().String(), strconv.Itoa(len(arr)-1)), nil
}

// captureValue resolves path in the document and deep-copies the result
// so the inverse operation owns it outright.
func captureValue(document any, path string) (any, error) {
	val, err := jsonpointer.Get(document, path)
	if err != nil {
		return nil, translate(err)
	}
	return cloneValue(val)
}

func cloneValue(v any) (any, error) {
	clone, err := deepcopy.Anything(v)
	if err != nil {
		return nil, fmt.Errorf("failed to clone value: %w", err)
	}
	return clone, nil
}
