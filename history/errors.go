package history

import (
	"errors"
	"fmt"
)

// ==================== Sentinel Errors ====================

var (
	// ErrEmptyUUID is returned when a UUID parameter is empty or missing
	ErrEmptyUUID = fmt.Errorf("UUID cannot be empty")

	// ErrEmptyPort is returned when a port name parameter is empty
	ErrEmptyPort = fmt.Errorf("port name cannot be empty")

	// ErrRecordNotFound is returned when an update record doesn't exist
	ErrRecordNotFound = fmt.Errorf("update record not found")

	// ErrBucketNotFound is returned when a required database bucket doesn't exist
	ErrBucketNotFound = fmt.Errorf("database bucket not found")

	// ErrOrphanedRecord is returned when the port index points at a missing record
	ErrOrphanedRecord = fmt.Errorf("orphaned record reference")

	// ErrAlreadySubmitted is returned when an update already has a pull request
	ErrAlreadySubmitted = fmt.Errorf("update already submitted")
)

// ==================== Structured Error Types ====================

// DatabaseError wraps database operation errors with the operation and
// bucket involved.
type DatabaseError struct {
	Op     string // e.g. "open", "create bucket"
	Bucket string
	Err    error
}

func (e *DatabaseError) Error() string {
	if e.Bucket != "" {
		return fmt.Sprintf("database %s [bucket: %s]: %v", e.Op, e.Bucket, e.Err)
	}
	return fmt.Sprintf("database %s: %v", e.Op, e.Err)
}

func (e *DatabaseError) Unwrap() error { return e.Err }

// RecordError wraps update record operation errors.
type RecordError struct {
	Op   string // e.g. "save", "get", "update"
	UUID string
	Err  error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("update record %s [uuid: %s]: %v", e.Op, e.UUID, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }

// ValidationError reports an invalid argument.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed [%s]: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// IsRecordNotFound checks if the error indicates a record was not found.
func IsRecordNotFound(err error) bool {
	return errors.Is(err, ErrRecordNotFound)
}

// IsValidationError checks if the error is a validation error.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
