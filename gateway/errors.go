package gateway

import (
	"fmt"

	"github.com/selimhorri/ecommerce-contract-tests/probe"
)

// TransportError means the request never got a response.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s failed: %s", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// StatusMismatchError means a response was received with an unexpected status.
type StatusMismatchError struct {
	Method string
	URL    string
	Status int
	// Expected is zero if any 2xx status would have been accepted.
	Expected int
	Body     []byte
}

func (e *StatusMismatchError) Error() string {
	expected := "a 2xx status"
	if e.Expected != 0 {
		expected = fmt.Sprintf("%d", e.Expected)
	}
	return fmt.Sprintf("%s %s responded with status %d, expected %s; body: %s",
		e.Method, e.URL, e.Status, expected, probe.Excerpt(e.Body))
}

// MalformedBodyError means the status was as expected but the body could not be decoded.
type MalformedBodyError struct {
	Method string
	URL    string
	Status int
	Body   []byte
	Err    error
}

func (e *MalformedBodyError) Error() string {
	return fmt.Sprintf("%s %s responded with status %d but the body is not valid JSON (%s); body: %s",
		e.Method, e.URL, e.Status, e.Err, probe.Excerpt(e.Body))
}

func (e *MalformedBodyError) Unwrap() error { return e.Err }
