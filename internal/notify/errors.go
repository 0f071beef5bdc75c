package notify

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest matches every *InvalidRequestError.
	ErrInvalidRequest = errors.New("invalid notification request")
	// ErrBackendDispatch matches every *BackendDispatchError.
	ErrBackendDispatch = errors.New("notification dispatch failed")
)

// InvalidRequestError reports caller misuse detected before the backend is called.
type InvalidRequestError struct {
	Field  string
	Reason string
}

func (e *InvalidRequestError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid notification request: %s", e.Reason)
	}
	return fmt.Sprintf("invalid notification request: %s: %s", e.Field, e.Reason)
}

// Is implements errors.Is.
func (e *InvalidRequestError) Is(target error) bool {
	return target == ErrInvalidRequest
}

// BackendDispatchError carries a backend failure. Error returns the backend's
// message unchanged.
type BackendDispatchError struct {
	Op      string
	Backend string
	Code    string
	Message string
}

func (e *BackendDispatchError) Error() string {
	return e.Message
}

// Is implements errors.Is.
func (e *BackendDispatchError) Is(target error) bool {
	return target == ErrBackendDispatch
}
