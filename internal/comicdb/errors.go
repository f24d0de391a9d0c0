package comicdb

import "errors"

var (
	// ErrConnection marks transient network or remote-service failures.
	// Results carrying this error must never be cached.
	ErrConnection = errors.New("comic database connection error")
	// ErrNotFound marks lookups whose key no longer exists remotely.
	ErrNotFound = errors.New("comic database record not found")
)

// IsTransient reports whether err represents a retryable gateway failure.
func IsTransient(err error) bool {
	return errors.Is(err, ErrConnection)
}
