package traversal

import (
	"errors"
	"fmt"
)

// ErrNoMethod is wrapped by the error returned when a candidate is registered
// outside BeginMethod/EndMethod.
var ErrNoMethod = errors.New("no method is being traversed")

// PreconditionError reports a broken traversal contract. Processing of the
// current unit must stop when one is returned.
type PreconditionError struct {
	Op    string
	Class string
	Cause error
}

// Error implements the error interface.
func (e *PreconditionError) Error() string {
	return fmt.Sprintf("precondition violated: %s in %s: %v", e.Op, e.Class, e.Cause)
}

// Unwrap returns the underlying cause of the error.
func (e *PreconditionError) Unwrap() error {
	return e.Cause
}

// IsFatal always reports true; a broken contract means identifiers can no
// longer be trusted.
func (e *PreconditionError) IsFatal() bool {
	return true
}
