// Package errs holds the sentinel errors the storage layer reports to
// callers. Not-found is signaled by a nil record, never an error; only the
// conflict pre-check gets a sentinel so handlers can map it to 409.
package errs

import "errors"

var (
	// ErrDuplicateName is returned by Create when the proactive uniqueness
	// pre-check finds an existing record with the same (case-insensitive)
	// name.
	ErrDuplicateName = errors.New("duplicate name")

	// ErrInvalidStatus is returned when a referenced status id is not
	// present in its lookup table.
	ErrInvalidStatus = errors.New("invalid status")
)
