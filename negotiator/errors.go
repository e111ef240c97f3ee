package negotiator

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoAllowList is returned when Fetch is called without any acceptable MIME types.
var ErrNoAllowList = errors.New("negotiator: allowed MIME types are required")

// HTTPError reports a response with a status code of 400 or above.
type HTTPError struct {
	URL        string
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.StatusCode)
}

// ValidationError reports a response whose Content-Type matched none of the allowed types.
type ValidationError struct {
	URL         string
	ContentType string
	Allowed     []string
}

func (e *ValidationError) Error() string {
	ct := e.ContentType
	if ct == "" {
		ct = "<none>"
	}
	return fmt.Sprintf("GET %s: content type %s not in [%s]", e.URL, ct, strings.Join(e.Allowed, ", "))
}

// TransportError wraps a failure to obtain any response at all.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("GET %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
