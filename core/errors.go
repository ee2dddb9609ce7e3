package core

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed call.
type ErrorKind int

const (
	// KindProcessing is the catch-all for server errors with an unrecognized name.
	KindProcessing ErrorKind = iota
	// KindUnauthorized means the call requires a valid session token.
	KindUnauthorized
	// KindInfo is an informative error reported by the server.
	KindInfo
	// KindNotFound means the requested entity does not exist.
	KindNotFound
	// KindInput means the server rejected the call input.
	KindInput
	// KindMalformedResponse means the reply could not be decoded.
	KindMalformedResponse
	// KindNetwork means the request never produced a reply.
	KindNetwork
)

// String returns the wire name of the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindUnauthorized:
		return "UnauthorizedError"
	case KindInfo:
		return "InfoError"
	case KindNotFound:
		return "NotFoundError"
	case KindInput:
		return "InputError"
	case KindMalformedResponse:
		return "MalformedResponse"
	case KindNetwork:
		return "NetworkError"
	default:
		return "ProcessingError"
	}
}

// Sentinel returns the sentinel error matching the kind.
func (k ErrorKind) Sentinel() error {
	switch k {
	case KindUnauthorized:
		return ErrUnauthorized
	case KindInfo:
		return ErrInfo
	case KindNotFound:
		return ErrNotFound
	case KindInput:
		return ErrInput
	case KindMalformedResponse:
		return ErrMalformedResponse
	case KindNetwork:
		return ErrNetwork
	default:
		return ErrProcessing
	}
}

// KindForName maps a server-reported error name to its kind.
// Unknown names map to KindProcessing.
func KindForName(name string) ErrorKind {
	switch name {
	case "UnauthorizedError":
		return KindUnauthorized
	case "InfoError":
		return KindInfo
	case "NotFoundError":
		return KindNotFound
	case "InputError":
		return KindInput
	default:
		return KindProcessing
	}
}

// APIError is returned for every failed call, whether the failure was
// reported by the server, detected while decoding, or raised by the transport.
type APIError struct {
	Kind        ErrorKind
	Func        string // Remote function that was called
	Name        string // Error name as reported by the server, if any
	Message     string
	OperationID string // Server correlation id, diagnostics only
	Status      int    // HTTP status, 0 if no reply was received
	Err         error  // Underlying cause, if any
}

// Error implements the error interface.
func (e *APIError) Error() string {
	msg := e.Message
	if e.Func != "" {
		msg = e.Func + ": " + msg
	}
	if e.OperationID != "" {
		return fmt.Sprintf("%s (kind=%s, operation_id=%s)", msg, e.Kind, e.OperationID)
	}
	return fmt.Sprintf("%s (kind=%s)", msg, e.Kind)
}

// Unwrap returns the underlying cause.
func (e *APIError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for the error kind.
func (e *APIError) Is(target error) bool {
	return target == e.Kind.Sentinel()
}

// KindOf returns the kind of err and whether err carries one.
func KindOf(err error) (ErrorKind, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind, true
	}
	return KindProcessing, false
}

// Sentinel errors for classification.
var (
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInfo              = errors.New("info")
	ErrNotFound          = errors.New("not found")
	ErrInput             = errors.New("invalid input")
	ErrProcessing        = errors.New("processing error")
	ErrMalformedResponse = errors.New("malformed response")
	ErrNetwork           = errors.New("network error")
)

// ErrFuncRequired is returned when a call has no function name.
var ErrFuncRequired = errors.New("function name required: pass a remote function such as \"misc.getFortune\"")
