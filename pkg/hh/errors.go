package hh

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport covers connection, DNS, TLS and context failures
	ErrTransport = errors.New("hh: transport error")
	// ErrStatus is matched by every *StatusError
	ErrStatus = errors.New("hh: unexpected status")
	// ErrDecode means the body was not a listing JSON document
	ErrDecode = errors.New("hh: decode response")
)

// StatusError is returned for any non-2xx response
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("hh: API error (%d)", e.StatusCode)
	}
	return fmt.Sprintf("hh: API error (%d): %s", e.StatusCode, e.Body)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrStatus
}

// IsRequestFailure reports whether err is a transport or HTTP status failure
func IsRequestFailure(err error) bool {
	return errors.Is(err, ErrTransport) || errors.Is(err, ErrStatus)
}
