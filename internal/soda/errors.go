package soda

import (
	"errors"
	"fmt"
)

var (
	// ErrRequest is matched by every non-2xx response error.
	ErrRequest = errors.New("request rejected by the dataset endpoint")

	// ErrDecode is matched by every malformed-response error.
	ErrDecode = errors.New("response body is not a JSON array of objects")
)

// RequestError reports a non-2xx response. Body carries the raw server
// response, which for SODA endpoints usually explains what was wrong
// with the query.
type RequestError struct {
	StatusCode int
	Body       string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Body)
}

func (e *RequestError) Is(target error) bool {
	return target == ErrRequest
}

// DecodeError reports a response body that could not be decoded as a
// JSON array of objects.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}
