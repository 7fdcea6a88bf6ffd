package model

import "fmt"

// UpstreamError is a classified failure from the upstream boundary. The
// transport produces it; the retry orchestrator consults Kind to decide
// whether another attempt is worthwhile.
type UpstreamError struct {
	Kind       ErrorKind
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("upstream %s (status %d): %v", e.Kind, e.StatusCode, e.Err)
	}

	return fmt.Sprintf("upstream %s (status %d)", e.Kind, e.StatusCode)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// NewUpstreamError builds a classified upstream failure.
func NewUpstreamError(kind ErrorKind, statusCode int, err error) *UpstreamError {
	return &UpstreamError{
		Kind:       kind,
		StatusCode: statusCode,
		Err:        err,
	}
}
