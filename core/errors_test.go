package core

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestAPIErrorImplementsError(t *testing.T) {
	err := &APIError{
		Kind:        KindNotFound,
		Func:        "problems.getProblem",
		Name:        "NotFoundError",
		Message:     "problem not found",
		OperationID: "op-123",
	}

	var _ error = err

	errStr := err.Error()
	if !strings.Contains(errStr, "problems.getProblem") {
		t.Error("Error() should contain function name")
	}
	if !strings.Contains(errStr, "problem not found") {
		t.Error("Error() should contain message")
	}
	if !strings.Contains(errStr, "op-123") {
		t.Error("Error() should contain operation id")
	}
}

func TestAPIErrorWithoutOperationID(t *testing.T) {
	err := &APIError{Kind: KindInput, Message: "bad email"}

	errStr := err.Error()
	if strings.Contains(errStr, "operation_id") {
		t.Errorf("Error() = %q, should not contain operation_id when empty", errStr)
	}
	if !strings.Contains(errStr, "InputError") {
		t.Errorf("Error() = %q, should contain kind", errStr)
	}
}

func TestAPIErrorIsSentinel(t *testing.T) {
	tests := []struct {
		kind     ErrorKind
		sentinel error
	}{
		{KindUnauthorized, ErrUnauthorized},
		{KindInfo, ErrInfo},
		{KindNotFound, ErrNotFound},
		{KindInput, ErrInput},
		{KindProcessing, ErrProcessing},
		{KindMalformedResponse, ErrMalformedResponse},
		{KindNetwork, ErrNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			err := fmt.Errorf("wrapped: %w", &APIError{Kind: tt.kind, Message: "m"})
			if !errors.Is(err, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false, want true", err, tt.sentinel)
			}
			if tt.kind != KindProcessing && errors.Is(err, ErrProcessing) {
				t.Errorf("errors.Is(%v, ErrProcessing) = true, want false", err)
			}
		})
	}
}

func TestAPIErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := &APIError{Kind: KindNetwork, Message: cause.Error(), Err: cause}

	if err.Unwrap() != cause {
		t.Errorf("Unwrap() = %v, want %v", err.Unwrap(), cause)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the underlying cause")
	}
}

func TestKindForName(t *testing.T) {
	tests := []struct {
		name string
		want ErrorKind
	}{
		{"UnauthorizedError", KindUnauthorized},
		{"InfoError", KindInfo},
		{"NotFoundError", KindNotFound},
		{"InputError", KindInput},
		{"WeirdNewError", KindProcessing},
		{"", KindProcessing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindForName(tt.name); got != tt.want {
				t.Errorf("KindForName(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestKindOf(t *testing.T) {
	kind, ok := KindOf(fmt.Errorf("call: %w", &APIError{Kind: KindInfo}))
	if !ok || kind != KindInfo {
		t.Errorf("KindOf() = (%v, %v), want (InfoError, true)", kind, ok)
	}

	if _, ok := KindOf(errors.New("plain")); ok {
		t.Error("KindOf() should report false for errors without a kind")
	}
}
