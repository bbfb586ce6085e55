package jsonpatch

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/docshift/jsonpatch/jsonpointer"
)

// ExtractAdded splits a document into the values a patch added and
// everything else. Given the document state after the patch was applied
// and the patch itself, it returns the document with the added values
// taken back out ("remaining") and a skeleton document holding only the
// added values at their original positions ("addedOnly"). Operations
// other than add are ignored; repeated adds to the same object member
// are last-write-wins. Root-level adds and adds whose parent container
// is missing from the document are errors. The input document is not
// modified.
func ExtractAdded(after any, patch Patch) (remaining any, addedOnly any, err error) {
	remaining = after
	for i, op := range patch {
		if op.Op != Add {
			continue
		}
		p, err := jsonpointer.New(op.Path)
		if err != nil {
			return nil, nil, &PatchError{Index: i, Op: op.Op, Path: op.Path, Err: translate(err)}
		}
		if p.IsRoot() {
			return nil, nil, &PatchError{Index: i, Op: op.Op, Path: op.Path,
				Err: errors.New("cannot extract a root-level add")}
		}

		// The immediate parent must still be present; the walk also
		// catches paths that never existed in the document at all.
		parentVal, err := p.Parent().Get(remaining)
		if err != nil {
			return nil, nil, &PatchError{Index: i, Op: op.Op, Path: op.Path, Err: translate(err)}
		}

		addedOnly, err = skeletonAdd(addedOnly, after, p, 0, op.Value)
		if err != nil {
			return nil, nil, &PatchError{Index: i, Op: op.Op, Path: op.Path, Err: err}
		}

		next, err := extractLeaf(remaining, parentVal, p, op.Value)
		if err != nil {
			return nil, nil, &PatchError{Index: i, Op: op.Op, Path: op.Path, Err: err}
		}
		remaining = next
	}
	return remaining, addedOnly, nil
}

// extractLeaf removes the value the add operation introduced from the
// working document (copy-on-write). A member or element that is no
// longer present is left alone: a later operation may already have
// displaced it.
func extractLeaf(remaining any, parentVal any, p jsonpointer.Pointer, value any) (any, error) {
	switch parent := parentVal.(type) {
	case map[string]any:
		if _, ok := parent[p.Last()]; !ok {
			return remaining, nil
		}
		return p.Remove(remaining)
	case []any:
		idx := len(parent) - 1
		if tok := p.Last(); tok != "-" {
			var err error
			idx, err = jsonpointer.ParseArrayIndex(tok)
			if err != nil {
				return nil, translate(err)
			}
		}
		// Trust the recorded index only if the element there still
		// matches the added value; otherwise locate it by equality.
		if idx >= len(parent) || !Equal(parent[idx], value) {
			idx = -1
			for j, el := range parent {
				if Equal(el, value) {
					idx = j
					break
				}
			}
			if idx < 0 {
				return remaining, nil
			}
		}
		concrete := make(jsonpointer.Pointer, len(p))
		copy(concrete, p)
		concrete[len(concrete)-1] = strconv.Itoa(idx)
		return concrete.Remove(remaining)
	default:
		return nil, fmt.Errorf("%w: parent of %q is not a container", ErrPathNotFound, p.String())
	}
}

// skeletonAdd records an added value in the addedOnly document,
// creating intermediate containers of the same kind as the
// corresponding containers in the source document.
func skeletonAdd(sk any, after any, p jsonpointer.Pointer, depth int, value any) (any, error) {
	tok := p[depth]
	last := depth == len(p)-1

	switch afterNode := after.(type) {
	case map[string]any:
		m, ok := sk.(map[string]any)
		if !ok {
			m = map[string]any{}
		}
		if last {
			m[tok] = value
			return m, nil
		}
		childAfter, ok := afterNode[tok]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrPathNotFound, p[:depth+1].String())
		}
		childSk, err := skeletonAdd(m[tok], childAfter, p, depth+1, value)
		if err != nil {
			return nil, err
		}
		m[tok] = childSk
		return m, nil
	case []any:
		arr, ok := sk.([]any)
		if !ok {
			arr = []any{}
		}
		if last {
			return append(arr, value), nil
		}
		idx, err := jsonpointer.ParseArrayIndex(tok)
		if err != nil {
			return nil, translate(err)
		}
		if idx >= len(afterNode) {
			return nil, fmt.Errorf("%w: %q", ErrPathNotFound, p[:depth+1].String())
		}
		childSk, err := skeletonAdd(nil, afterNode[idx], p, depth+1, value)
		if err != nil {
			return nil, err
		}
		return append(arr, childSk), nil
	default:
		return nil, fmt.Errorf("%w: %q is not a container", ErrPathNotFound, p[:depth].String())
	}
}
