package portfile

import "fmt"

// ErrAmbiguous is returned when more than one revision field exists and
// at least one is nonzero; there is no safe way to pick which to reset.
var ErrAmbiguous = fmt.Errorf("multiple revision numbers found, unsure which to reduce to 0")

// AmbiguousRevisionError wraps ErrAmbiguous with the counts found.
type AmbiguousRevisionError struct {
	Nonzero int // revision fields with a nonzero value
	Total   int // revision fields of any value
}

// Error implements the error interface
func (e *AmbiguousRevisionError) Error() string {
	return fmt.Sprintf("%v (%d revision fields, %d nonzero)", ErrAmbiguous, e.Total, e.Nonzero)
}

// Unwrap allows errors.Is(err, ErrAmbiguous) to work correctly
func (e *AmbiguousRevisionError) Unwrap() error {
	return ErrAmbiguous
}
