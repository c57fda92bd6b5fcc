package clients

import "fmt"

// RemoteError means the service responded, but with a failure status.
// Message carries the server's own error text when a body was readable,
// otherwise a generic "<operation> failed with status <code>" line.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string { return e.Message }

// TransportError means no HTTP response was obtained at all (DNS failure,
// connection refused, timeout). It is never a server verdict.
type TransportError struct {
	Service string
	Err     error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("unable to connect to the %s service: check your network connection and that the service is running", e.Service)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ValidationError means a local precondition failed before any request
// was issued (oversized upload, non-image file, bad form input).
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }
