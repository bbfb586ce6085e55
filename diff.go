package jsonpatch

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/docshift/jsonpatch/jsonpointer"
)

// New computes an RFC 6902 patch that transforms document a into
// document b. Inputs may be value trees, raw JSON ([]byte or
// json.RawMessage) or any json-marshalable Go value; both sides are
// normalized through encoding/json first, so integer and float
// representations of the same number never produce an operation.
// Equal inputs yield an empty patch.
func New(a, b any) (Patch, error) {
	av, err := normalize(a)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize left document: %w", err)
	}
	bv, err := normalize(b)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize right document: %w", err)
	}

	patch := Patch{}
	diffValues(&patch, "", av, bv)
	return patch, nil
}

// normalize round-trips v through JSON into the document value domain.
func normalize(v any) (any, error) {
	var raw []byte
	switch t := v.(type) {
	case nil:
		return nil, nil
	case json.RawMessage:
		raw = t
	case []byte:
		raw = t
	default:
		var err error
		raw, err = json.Marshal(v)
		if err != nil {
			return nil, err
		}
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func diffValues(patch *Patch, path string, a, b any) {
	if Equal(a, b) {
		return
	}
	switch av := a.(type) {
	case map[string]any:
		if bv, ok := b.(map[string]any); ok {
			diffObjects(patch, path, av, bv)
			return
		}
	case []any:
		if bv, ok := b.([]any); ok {
			diffArrays(patch, path, av, bv)
			return
		}
	}
	*patch = append(*patch, Operation{Op: Replace, Path: path, Value: b})
}

func diffObjects(patch *Patch, path string, a, b map[string]any) {
	// Sorted key order keeps the generated patch deterministic.
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		childPath := jsonpointer.Append(path, k)
		if bv, ok := b[k]; ok {
			diffValues(patch, childPath, a[k], bv)
		} else {
			*patch = append(*patch, Operation{Op: Remove, Path: childPath})
		}
	}

	added := make([]string, 0, len(b))
	for k := range b {
		if _, ok := a[k]; !ok {
			added = append(added, k)
		}
	}
	sort.Strings(added)
	for _, k := range added {
		*patch = append(*patch, Operation{Op: Add, Path: jsonpointer.Append(path, k), Value: b[k]})
	}
}

// diffArrays matches a longest common subsequence of deep-equal
// elements and emits remove/add operations for everything off the
// spine. Indices in the emitted paths track the array as it shifts
// under the earlier operations.
func diffArrays(patch *Patch, path string, a, b []any) {
	n, m := len(a), len(b)

	// lcs[i][j] holds the LCS length of a[i:] and b[j:].
	lcs := make([][]int, n+1)
	for i := range lcs {
		lcs[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if Equal(a[i], b[j]) {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else if lcs[i+1][j] >= lcs[i][j+1] {
				lcs[i][j] = lcs[i+1][j]
			} else {
				lcs[i][j] = lcs[i][j+1]
			}
		}
	}

	i, j := 0, 0
	out := 0 // index into the array as it looks mid-patch
	for i < n || j < m {
		switch {
		case i < n && j < m && Equal(a[i], b[j]):
			i++
			j++
			out++
		case i < n && (j == m || lcs[i+1][j] >= lcs[i][j+1]):
			*patch = append(*patch, Operation{Op: Remove, Path: jsonpointer.Append(path, strconv.Itoa(out))})
			i++
		default:
			*patch = append(*patch, Operation{Op: Add, Path: jsonpointer.Append(path, strconv.Itoa(out)), Value: b[j]})
			j++
			out++
		}
	}
}
