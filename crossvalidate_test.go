package jsonpatch_test

import (
	"encoding/json"
	"testing"

	evanphx "github.com/evanphx/json-patch"
	"github.com/stretchr/testify/require"

	"github.com/docshift/jsonpatch"
)

// The same patches are applied through evanphx/json-patch's byte-level
// engine and through this one; the resulting documents must agree.
func TestApply_AgreesWithEvanphx(t *testing.T) {
	testCases := []struct {
		name  string
		doc   string
		patch string
	}{
		{
			name:  "object add and replace",
			doc:   `{"a":"b","nested":{"x":1}}`,
			patch: `[{"op":"add","path":"/c","value":"d"},{"op":"replace","path":"/nested/x","value":2}]`,
		},
		{
			name:  "array insert",
			doc:   `{"foo":["bar","baz"]}`,
			patch: `[{"op":"add","path":"/foo/1","value":"qux"}]`,
		},
		{
			name:  "array append",
			doc:   `{"foo":["bar"]}`,
			patch: `[{"op":"add","path":"/foo/-","value":"baz"}]`,
		},
		{
			name:  "remove member and element",
			doc:   `{"a":"b","foo":["x","y","z"]}`,
			patch: `[{"op":"remove","path":"/a"},{"op":"remove","path":"/foo/1"}]`,
		},
		{
			name:  "move a value",
			doc:   `{"foo":{"bar":"baz","waldo":"fred"},"qux":{"corge":"grault"}}`,
			patch: `[{"op":"move","from":"/foo/waldo","path":"/qux/thud"}]`,
		},
		{
			name:  "copy a value",
			doc:   `{"a":{"b":1},"c":{}}`,
			patch: `[{"op":"copy","from":"/a/b","path":"/c/d"}]`,
		},
		{
			name:  "test then replace",
			doc:   `{"baz":"qux"}`,
			patch: `[{"op":"test","path":"/baz","value":"qux"},{"op":"replace","path":"/baz","value":"boo"}]`,
		},
		{
			name:  "escaped pointer tokens",
			doc:   `{"a/b":1,"m~n":2}`,
			patch: `[{"op":"replace","path":"/a~1b","value":3},{"op":"remove","path":"/m~0n"}]`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			reference, err := evanphx.DecodePatch([]byte(tc.patch))
			require.NoError(t, err)
			referenceOut, err := reference.Apply([]byte(tc.doc))
			require.NoError(t, err)

			var doc any
			require.NoError(t, json.Unmarshal([]byte(tc.doc), &doc))
			var patch jsonpatch.Patch
			require.NoError(t, json.Unmarshal([]byte(tc.patch), &patch))

			out, err := jsonpatch.Apply(doc, patch)
			require.NoError(t, err)

			var want any
			require.NoError(t, json.Unmarshal(referenceOut, &want))
			require.Equal(t, want, out)
		})
	}
}

func TestApply_FailuresAgreeWithEvanphx(t *testing.T) {
	testCases := []struct {
		name  string
		doc   string
		patch string
	}{
		// replace of a missing path is deliberately absent: the reference
		// engine applies it without error, while this one rejects it (see
		// the error-kind coverage in apply_test.go).
		{
			name:  "test mismatch",
			doc:   `{"a":1}`,
			patch: `[{"op":"test","path":"/a","value":2}]`,
		},
		{
			name:  "remove missing member",
			doc:   `{"a":1}`,
			patch: `[{"op":"remove","path":"/b"}]`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			reference, err := evanphx.DecodePatch([]byte(tc.patch))
			require.NoError(t, err)
			_, referenceErr := reference.Apply([]byte(tc.doc))
			require.Error(t, referenceErr)

			var doc any
			require.NoError(t, json.Unmarshal([]byte(tc.doc), &doc))
			var patch jsonpatch.Patch
			require.NoError(t, json.Unmarshal([]byte(tc.patch), &patch))

			_, err = jsonpatch.Apply(doc, patch)
			require.Error(t, err)
		})
	}
}
