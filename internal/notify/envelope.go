package notify

import "encoding/json"

// Failure codes set by the dispatcher and the bundled backends.
const (
	CodeUnavailable = "unavailable"
	CodeUnsupported = "unsupported"
	CodeRejected    = "rejected"
	CodeTimeout     = "timeout"
	CodeCanceled    = "canceled"
)

// ErrorDescriptor describes a backend failure.
type ErrorDescriptor struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// Response is the envelope a backend returns from a notify_send call:
// either an opaque success payload or an error descriptor.
type Response struct {
	Ok  json.RawMessage  `json:"ok,omitempty"`
	Err *ErrorDescriptor `json:"err,omitempty"`
}

// Success wraps v as an opaque success payload.
func Success(v any) Response {
	b, err := json.Marshal(v)
	if err != nil {
		return Response{Ok: json.RawMessage("null")}
	}
	return Response{Ok: b}
}

// Failure builds an error envelope.
func Failure(code, message string) Response {
	return Response{Err: &ErrorDescriptor{Code: code, Message: message}}
}

// FailureFromError builds an error envelope carrying err's text.
func FailureFromError(code string, err error) Response {
	return Failure(code, err.Error())
}

// IsError reports whether the envelope holds an error descriptor.
func (r Response) IsError() bool {
	return r.Err != nil
}

// unwrapResponse discards a success payload or turns the error descriptor
// into a *BackendDispatchError with the message untouched.
func unwrapResponse(backend string, r Response) (Result, error) {
	if r.Err != nil {
		return Result{}, &BackendDispatchError{
			Op:      OpNotifySend,
			Backend: backend,
			Code:    r.Err.Code,
			Message: r.Err.Message,
		}
	}
	return Result{}, nil
}
