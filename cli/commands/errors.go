package commands

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/petal-labs/jutge/core"
)

// Exit codes
const (
	ExitSuccess      = 0
	ExitValidation   = 1
	ExitAPI          = 2
	ExitNetwork      = 3
	ExitUnauthorized = 4
)

// exitError wraps an error with an exit code.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

func (e *exitError) ExitCode() int {
	return e.code
}

func exitWithCode(code int, err error) error {
	return &exitError{code: code, err: err}
}

// handleCallError reports a failed call and maps it to an exit code.
func (a *App) handleCallError(err error) error {
	var apiErr *core.APIError
	if errors.As(err, &apiErr) {
		if a.jsonOutput {
			a.outputErrorJSON(apiErr.Kind.String(), apiErr.Message, apiErr.Func, apiErr.OperationID)
		} else {
			fmt.Fprintf(a.stderr, "Error: %s\n", apiErr.Message)
			if apiErr.OperationID != "" {
				fmt.Fprintf(a.stderr, "  Function: %s, Operation ID: %s\n", apiErr.Func, apiErr.OperationID)
			}
		}

		switch {
		case errors.Is(err, core.ErrNetwork):
			return exitWithCode(ExitNetwork, err)
		case errors.Is(err, core.ErrUnauthorized):
			return exitWithCode(ExitUnauthorized, err)
		default:
			return exitWithCode(ExitAPI, err)
		}
	}

	if errors.Is(err, core.ErrFuncRequired) {
		return a.validationError(err)
	}

	if a.jsonOutput {
		a.outputErrorJSON("error", err.Error(), "", "")
	} else {
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
	}
	return exitWithCode(ExitAPI, err)
}

// validationError reports a usage problem.
func (a *App) validationError(err error) error {
	if a.jsonOutput {
		a.outputErrorJSON("validation_error", err.Error(), "", "")
	} else {
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
	}
	return exitWithCode(ExitValidation, err)
}

func (a *App) outputErrorJSON(errType, message, fn, operationID string) {
	body := map[string]any{
		"type":    errType,
		"message": message,
	}
	if fn != "" {
		body["func"] = fn
	}
	if operationID != "" {
		body["operation_id"] = operationID
	}

	enc := json.NewEncoder(a.stderr)
	enc.SetIndent("", "  ")
	_ = enc.Encode(map[string]any{"error": body})
}

func (a *App) outputJSON(v any) error {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
