package jsonpointer

import (
	"errors"
	"fmt"
)

var (
	errDanglingTilde = errors.New("'~' at end of reference token")
	errBadEscape     = errors.New("'~' must be followed by '0' or '1'")
)

// SyntaxError indicates a string that is not a valid RFC 6901 pointer.
type SyntaxError struct {
	Pointer string
	Reason  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid JSON pointer %q: %s", e.Pointer, e.Reason)
}

// NotFoundError indicates that a walk failed before reaching the
// pointer's target. Depth is the number of tokens successfully
// traversed before the failure, so callers can tell a missing leaf
// from a missing intermediate container.
type NotFoundError struct {
	Pointer string
	Depth   int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("value not found at %q (token %d)", e.Pointer, e.Depth)
}

// IndexError indicates an array reference token that is malformed
// (Index == -1) or outside the valid range for the array it was
// applied to.
type IndexError struct {
	Token  string
	Index  int
	Length int
}

func (e *IndexError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("invalid array index %q", e.Token)
	}
	return fmt.Sprintf("array index %d out of range for array of length %d", e.Index, e.Length)
}
