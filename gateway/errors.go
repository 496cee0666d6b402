package gateway

import (
	"errors"
	"fmt"
)

// ErrInitialization marks a missing credential or failed client setup. It is
// fatal: the process must stop before accepting input.
var ErrInitialization = errors.New("gateway initialization failed")

// Sentinels for InferenceError kinds. Match with errors.Is.
var (
	ErrEmptyResponse    = errors.New("empty response")
	ErrTimeout          = errors.New("inference timed out")
	ErrTransportFailure = errors.New("transport failure")
	ErrProviderError    = errors.New("provider error")
)

// InferenceError is returned by GenerateReply for every failed call.
// Kind is one of the sentinels above; Err carries the underlying cause.
// Code is the "code" field of the provider's error body, which is not
// necessarily the HTTP status of the response. Zero when absent.
type InferenceError struct {
	Kind error
	Code int
	Err  error
}

func (e *InferenceError) Error() string {
	if e.Err == nil {
		return e.Kind.Error()
	}
	if e.Code != 0 {
		return fmt.Sprintf("%s (code %d): %v", e.Kind, e.Code, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *InferenceError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newInferenceError(kind error, err error) *InferenceError {
	return &InferenceError{Kind: kind, Err: err}
}
