package service

import (
	"errors"
	"fmt"
)

// Error taxonomy surfaced verbatim to the HTTP layer. Handlers map these to
// status codes; nothing here is silently recovered.
var (
	ErrNotFound          = errors.New("record not found")
	ErrForbidden         = errors.New("record not owned by caller")
	ErrDuplicateEntry    = errors.New("book already in library")
	ErrInvalidRating     = errors.New("invalid rating category or value")
	ErrInvalidTransition = errors.New("invalid reading status")
	ErrInvalidPage       = errors.New("invalid page number")
	ErrStoreUnavailable  = errors.New("store unavailable")
)

// storeErr tags an unexpected persistence failure so callers can decide to retry.
func storeErr(err error) error {
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
