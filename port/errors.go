package port

import "fmt"

// Sentinel errors - simple error constants that can be checked with errors.Is()
var (
	// ErrNotFound is returned when a port is unknown to the package index.
	// This is the base error for NotFoundError.
	ErrNotFound = fmt.Errorf("port does not exist")

	// ErrUserDeclined is returned when the user answers no to a
	// confirmation prompt. It is a normal abort, not a crash.
	ErrUserDeclined = fmt.Errorf("declined by user")

	// ErrLintFailed is returned when port lint reports errors.
	ErrLintFailed = fmt.Errorf("lint reported errors")

	// ErrTestFailed is returned when port test fails for the port and its
	// last sub-port.
	ErrTestFailed = fmt.Errorf("port test failed")

	// ErrInstallFailed is returned when port install exits non-zero.
	ErrInstallFailed = fmt.Errorf("port install failed")
)

// NotFoundError wraps ErrNotFound with the port that could not be looked up.
type NotFoundError struct {
	// Name is the port name as given by the user (e.g., "gping")
	Name string

	// Index reports whether the lookup went through the port index
	Index bool
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s doesn't exist, run portindex if the port is new", e.Name)
}

// Unwrap allows errors.Is(err, ErrNotFound) to work correctly
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// LintError carries the counts parsed from port lint.
type LintError struct {
	Name     string
	Errors   int
	Warnings int
}

// Error implements the error interface
func (e *LintError) Error() string {
	return fmt.Sprintf("lint %s: %d errors and %d warnings", e.Name, e.Errors, e.Warnings)
}

// Unwrap allows errors.Is(err, ErrLintFailed) to work correctly
func (e *LintError) Unwrap() error {
	return ErrLintFailed
}
