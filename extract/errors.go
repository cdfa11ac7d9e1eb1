package extract

import (
	"errors"
	"fmt"
)

// Error is an extraction failure with a human-readable message.
// The catalog builder downgrades it to a skip-ledger entry.
type Error struct {
	Path    string
	Message string
	Err     error // underlying cause, may be nil
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("extract %s: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("extract %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// IsExtractionError reports whether err is an extraction failure.
func IsExtractionError(err error) bool {
	var extractErr *Error
	return errors.As(err, &extractErr)
}
