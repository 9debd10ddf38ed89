package catalog

import "errors"

// Error taxonomy for catalog failures, independent of the operation that
// triggered them. Match with errors.Is; messages keep the original detail.
var (
	// ErrAPI covers provider unavailability and any unclassified failure.
	ErrAPI = errors.New("catalog API error")
	// ErrAuth is returned when the provider rejects the credentials.
	ErrAuth = errors.New("catalog authentication failed")
	// ErrNotFound is returned when the provider has no such resource.
	ErrNotFound = errors.New("not found in catalog")
	// ErrRateLimited is returned when the provider's rate limit is hit.
	ErrRateLimited = errors.New("catalog rate limit exceeded")
	// ErrTimeout is returned when the provider request timed out.
	ErrTimeout = errors.New("catalog request timed out")
)
