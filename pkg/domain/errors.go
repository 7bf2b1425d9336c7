package domain

import "errors"

// Common domain errors
var (
	// ErrNotFound is returned when a requested resource is not found
	ErrNotFound = errors.New("resource not found")
	// ErrForbidden is returned when a resource exists but belongs to another user
	ErrForbidden = errors.New("forbidden")
	// ErrBadRequest is returned when input fails a business rule
	ErrBadRequest = errors.New("bad request")
	// ErrConflict is returned when trying to create a resource that already exists
	ErrConflict = errors.New("resource already exists")
	// ErrUnauthorized is returned for bad credentials or an invalid token
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInternal is returned in place of any unexpected failure
	ErrInternal = errors.New("internal error")
)

// IsKnown reports whether err belongs to the error taxonomy and may be shown
// to a client as-is.
func IsKnown(err error) bool {
	for _, known := range []error{
		ErrNotFound,
		ErrForbidden,
		ErrBadRequest,
		ErrConflict,
		ErrUnauthorized,
	} {
		if errors.Is(err, known) {
			return true
		}
	}
	return false
}
