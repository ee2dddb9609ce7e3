package rpc

import (
	"fmt"

	"github.com/petal-labs/jutge/core"
)

// unknownErrorMessage is used when the server omits the error message.
const unknownErrorMessage = "Unknown error"

// errMalformed is a decode failure without call context. Execute turns it
// into a *core.APIError naming the function.
type errMalformed struct {
	msg string
	err error
}

func (e *errMalformed) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

func (e *errMalformed) Unwrap() error {
	return e.err
}

// Is makes decode failures match core.ErrMalformedResponse before they get call context.
func (e *errMalformed) Is(target error) bool {
	return target == core.ErrMalformedResponse
}

func malformedf(format string, args ...any) error {
	return &errMalformed{msg: fmt.Sprintf(format, args...)}
}

func wrapMalformed(msg string, err error) error {
	return &errMalformed{msg: msg, err: err}
}

// newMalformedError attaches call context to a decode failure.
func newMalformedError(fn string, status int, err error) error {
	return &core.APIError{
		Kind:    core.KindMalformedResponse,
		Func:    fn,
		Message: err.Error(),
		Status:  status,
		Err:     err,
	}
}

// newNetworkError wraps transport failures.
func newNetworkError(fn string, err error) error {
	return &core.APIError{
		Kind:    core.KindNetwork,
		Func:    fn,
		Message: err.Error(),
		Err:     err,
	}
}

// newServerError maps an error reported in the answer to its kind.
func newServerError(fn string, status int, e *answerError, operationID string) error {
	message := e.Message
	if message == "" {
		message = unknownErrorMessage
	}
	return &core.APIError{
		Kind:        core.KindForName(e.Name),
		Func:        fn,
		Name:        e.Name,
		Message:     message,
		OperationID: operationID,
		Status:      status,
	}
}
