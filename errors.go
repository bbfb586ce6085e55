package jsonpatch

import (
	"errors"
	"fmt"

	"github.com/docshift/jsonpatch/jsonpointer"
)

// Failure kinds surfaced by Apply. Every error returned from Apply,
// Prepare or ExtractAdded wraps exactly one of these, so callers can
// match with errors.Is without depending on message text.
var (
	ErrPathNotFound      = errors.New("path not found")
	ErrInvalidIndex      = errors.New("invalid array index")
	ErrInvalidMoveTarget = errors.New("invalid move target")
	ErrTestTargetMissing = errors.New("test target missing")
	ErrTestFailed        = errors.New("test failed")
	ErrMalformedPointer  = errors.New("malformed JSON pointer")
)

// PatchError reports which operation of a patch failed and why. The
// wrapped error matches one of the Err* kinds above via errors.Is.
type PatchError struct {
	Index int    // position of the failing operation within the patch
	Op    Op     // operation kind
	Path  string // the operation's path
	Err   error
}

func (e *PatchError) Error() string {
	return fmt.Sprintf("patch operation %d (%s %q) failed: %v", e.Index, e.Op, e.Path, e.Err)
}

func (e *PatchError) Unwrap() error { return e.Err }

// translate maps resolver-level errors onto the engine's failure
// kinds so jsonpointer error shapes never reach Apply's callers.
func translate(err error) error {
	var syntaxErr *jsonpointer.SyntaxError
	if errors.As(err, &syntaxErr) {
		return fmt.Errorf("%w: %v", ErrMalformedPointer, err)
	}
	var indexErr *jsonpointer.IndexError
	if errors.As(err, &indexErr) {
		return fmt.Errorf("%w: %v", ErrInvalidIndex, err)
	}
	var notFoundErr *jsonpointer.NotFoundError
	if errors.As(err, &notFoundErr) {
		return fmt.Errorf("%w: %v", ErrPathNotFound, err)
	}
	return err
}
