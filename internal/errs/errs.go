// Package errs holds the sentinel errors shared between repositories,
// services and handlers. Handlers map them onto HTTP status codes.
package errs

import "errors"

var (
	// ErrNotFound signals a missing row (mapped to 404).
	ErrNotFound = errors.New("not found")

	// ErrAlreadyReviewed signals a duplicate review by the same user for the
	// same listing (mapped to 409).
	ErrAlreadyReviewed = errors.New("already reviewed")

	// ErrForbidden signals a caller acting on a resource they do not own and
	// may not moderate (mapped to 403).
	ErrForbidden = errors.New("forbidden")
)
