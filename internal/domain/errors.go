package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for catalog operations. The typed errors below match these
// through errors.Is.
var (
	// ErrConfiguration indicates the catalog credential is missing
	ErrConfiguration = errors.New("catalog is not configured")

	// ErrRequest indicates the catalog answered with a non-success status
	ErrRequest = errors.New("catalog request failed")

	// ErrTransport indicates the request never completed
	ErrTransport = errors.New("catalog is unreachable")

	// ErrDecode indicates the catalog response could not be parsed
	ErrDecode = errors.New("catalog response is malformed")
)

// ConfigurationError is returned before any network call when a required
// setting is absent.
type ConfigurationError struct {
	Setting string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s is not set", ErrConfiguration, e.Setting)
}

func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

// RequestError carries the status and body of a non-2xx catalog response
type RequestError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrRequest, e.Status, e.Body)
}

func (e *RequestError) Is(target error) bool { return target == ErrRequest }

// TransportError wraps a network-level failure. URL never contains the credential.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrTransport, e.URL, e.Err)
}

func (e *TransportError) Is(target error) bool { return target == ErrTransport }

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError wraps a JSON parse failure
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: %v", ErrDecode, e.Err)
}

func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

func (e *DecodeError) Unwrap() error { return e.Err }
