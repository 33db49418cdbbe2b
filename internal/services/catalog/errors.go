package catalog

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedResponse = errors.New("malformed response from metadata provider")
	ErrInvalidTransition = errors.New("operation not allowed in the current state")
	ErrUnknownCandidate  = errors.New("selected movie is not one of the search candidates")
	ErrEmptyTitle        = errors.New("title must not be empty")
)

// UpstreamError is returned when the metadata provider can't be reached or
// answers with a non-2xx status. StatusCode is zero for transport failures.
type UpstreamError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("metadata provider returned HTTP %d for %s", e.StatusCode, e.URL)
	}
	return fmt.Sprintf("metadata provider request to %s failed: %v", e.URL, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
