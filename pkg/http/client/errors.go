package client

import "fmt"

// TransportError is returned when a request could not complete at the
// connection level (DNS failure, refused connection, reset while reading).
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error for %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// NewTransportError creates a new transport error. Credentials in rawURL are redacted.
func NewTransportError(rawURL string, err error) *TransportError {
	return &TransportError{
		URL: redactURL(rawURL),
		Err: err,
	}
}

// HTTPStatusError is returned when a response completed with any status other than 200.
type HTTPStatusError struct {
	URL        string
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.StatusCode, e.URL)
}

func NewHTTPStatusError(rawURL string, statusCode int) *HTTPStatusError {
	return &HTTPStatusError{
		URL:        redactURL(rawURL),
		StatusCode: statusCode,
	}
}

// MalformedResponseError is returned when a 200 response body is not valid
// JSON or lacks the fields the caller needs.
type MalformedResponseError struct {
	Source  string
	Message string
	Err     error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed %s response: %s: %v", e.Source, e.Message, e.Err)
	}
	return fmt.Sprintf("malformed %s response: %s", e.Source, e.Message)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

func NewMalformedResponseError(source, message string, err error) *MalformedResponseError {
	return &MalformedResponseError{
		Source:  source,
		Message: message,
		Err:     err,
	}
}

// InvalidURLError means a base origin or endpoint could not be turned into an
// absolute request URL. It points at a configuration mistake rather than a
// runtime condition.
type InvalidURLError struct {
	Raw string
	Err error
}

func (e *InvalidURLError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid URL %q: %v", e.Raw, e.Err)
	}
	return fmt.Sprintf("invalid URL %q", e.Raw)
}

func (e *InvalidURLError) Unwrap() error {
	return e.Err
}

func NewInvalidURLError(raw string, err error) *InvalidURLError {
	return &InvalidURLError{
		Raw: raw,
		Err: err,
	}
}
