package clierr

import (
	"errors"
	"fmt"
)

const (
	defaultFailureExitCodeConstant = 1
	exitStatusTemplateConstant     = "exit status %d"
)

// ExitCoder is implemented by errors that choose the process exit code.
type ExitCoder interface {
	error
	ExitCode() int
}

// ExitError ends the process with an explicit code and prints nothing.
// The command has already reported its outcome on standard output.
type ExitError struct {
	code int
}

// Error describes the exit status for logs; main never prints it.
func (exitError *ExitError) Error() string {
	return fmt.Sprintf(exitStatusTemplateConstant, exitError.code)
}

// ExitCode returns the process exit code.
func (exitError *ExitError) ExitCode() int {
	return exitError.code
}

// Silent creates an ExitError that sets the exit code without any stderr output.
func Silent(code int) error {
	return &ExitError{code: normalizeExitCode(code)}
}

// ExitCodeOf extracts an exit code from any error: 0 for nil, 1 when none is carried.
func ExitCodeOf(err error) int {
	if err == nil {
		return 0
	}
	var exitCoder ExitCoder
	if errors.As(err, &exitCoder) {
		return exitCoder.ExitCode()
	}
	return defaultFailureExitCodeConstant
}

// IsSilent reports whether err asks for termination without a message.
func IsSilent(err error) bool {
	var exitError *ExitError
	return errors.As(err, &exitError)
}

func normalizeExitCode(code int) int {
	if code <= 0 {
		return defaultFailureExitCodeConstant
	}
	return code
}
