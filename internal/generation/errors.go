package generation

import (
	"errors"
	"fmt"
)

// Common errors returned by the generation package
var (
	// ErrTransportFailure is returned when the upstream call could not complete
	// (connection refused, DNS failure, timeout, cancelled context).
	ErrTransportFailure = errors.New("upstream request failed")

	// ErrInvalidResponse is returned when a success response cannot be decoded
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrInvalidConfig is returned when the generator configuration is invalid
	ErrInvalidConfig = errors.New("invalid generator configuration")
)

// UpstreamError reports a response whose status was not the success code.
// Body holds the upstream response body exactly as received.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream rejected request with status %d", e.StatusCode)
}

// AsUpstreamError returns the *UpstreamError in err's chain, if any.
func AsUpstreamError(err error) (*UpstreamError, bool) {
	var upstreamErr *UpstreamError
	if errors.As(err, &upstreamErr) {
		return upstreamErr, true
	}
	return nil, false
}
