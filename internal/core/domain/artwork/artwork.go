package artwork

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the Art Institute API has no artwork for the
// requested identifier.
var ErrNotFound = errors.New("artwork not found")

// NotFoundError carries the identifier the Art Institute API rejected.
// It matches ErrNotFound under errors.Is.
type NotFoundError struct {
	ExternalID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("artwork with id %s does not exist in Art Institute API", e.ExternalID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// UnreachableError reports that the Art Institute API could not be contacted.
type UnreachableError struct {
	Err error
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("failed to contact Art Institute API: %v", e.Err)
}

func (e *UnreachableError) Unwrap() error { return e.Err }

// IsUnreachable reports whether err (or anything it wraps) is an UnreachableError.
func IsUnreachable(err error) bool {
	var ue *UnreachableError
	return errors.As(err, &ue)
}

// CacheKey namespaces an external identifier for the title cache.
func CacheKey(externalID string) string {
	return "artwork:" + externalID
}
