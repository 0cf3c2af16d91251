package cli

import (
	"errors"
	"fmt"
)

// Exit codes, as for cmp(1)
const (
	ExitEqual     = 0
	ExitDifferent = 1
	ExitTrouble   = 2
)

// ExitError carries the process exit status of a command.
// Err is nil when the status alone reports the outcome.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode returns the exit status for an error returned by a command
func ExitCode(err error) int {
	if err == nil {
		return ExitEqual
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitTrouble
}

func trouble(format string, args ...any) error {
	return &ExitError{Code: ExitTrouble, Err: fmt.Errorf(format, args...)}
}
