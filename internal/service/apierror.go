package service

import "errors"

// ErrorKind classifies failures at the engine/client boundary so callers
// can present the right guidance for each.
type ErrorKind int

const (
	// ErrValidation is a local precondition failure; no request was sent.
	ErrValidation ErrorKind = iota
	// ErrRequestFailed is a non-2xx response from the engine.
	ErrRequestFailed
	// ErrEmptyResponse is a 2xx response whose body was required but
	// empty or unparseable.
	ErrEmptyResponse
	// ErrTimeout is a client-side abort, distinct from ErrRequestFailed
	// so the UI can suggest a smaller batch instead of a generic retry.
	ErrTimeout
	// ErrNetwork is a transport-level failure (DNS, connection).
	ErrNetwork
)

func (k ErrorKind) String() string {
	switch k {
	case ErrValidation:
		return "validation"
	case ErrRequestFailed:
		return "request_failed"
	case ErrEmptyResponse:
		return "empty_response"
	case ErrTimeout:
		return "timeout"
	case ErrNetwork:
		return "network"
	}
	return "unknown"
}

// APIError carries a classified failure and a user-presentable message.
type APIError struct {
	Kind    ErrorKind
	Message string
	Status  int // HTTP status for ErrRequestFailed, 0 otherwise
	Err     error
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func validationError(msg string) *APIError {
	return &APIError{Kind: ErrValidation, Message: msg}
}

func requestFailed(status int, msg string) *APIError {
	return &APIError{Kind: ErrRequestFailed, Status: status, Message: msg}
}

func emptyResponse(msg string) *APIError {
	return &APIError{Kind: ErrEmptyResponse, Message: msg}
}

func timeoutError(msg string, err error) *APIError {
	return &APIError{Kind: ErrTimeout, Message: msg, Err: err}
}

func networkError(msg string, err error) *APIError {
	return &APIError{Kind: ErrNetwork, Message: msg, Err: err}
}

// KindOf extracts the error kind, -1 for unclassified errors.
func KindOf(err error) ErrorKind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return ErrorKind(-1)
}

// IsKind reports whether err carries the given classification.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}
