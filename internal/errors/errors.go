package errors

import (
	"fmt"
	"strings"

	"emperror.dev/errors"
)

// Error codes for categorizing errors
const (
	ErrConfig   = "CONFIG"
	ErrSample   = "SAMPLE"
	ErrClock    = "CLOCK"
	ErrTerminal = "TERMINAL"
	ErrRender   = "RENDER"
)

// Error represents a structured error with code, message, suggestion, and optional cause.
// Rendered as:
//
//	✗ <What failed>
//
//	  <Why it failed - technical details>
//
//	  <How to fix it - actionable steps>
type Error struct {
	Code       string
	Message    string
	Suggestion string
	Cause      error
}

// New creates a new structured error with the given code, message, and suggestion.
func New(code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
	}
}

// WrapWithCode wraps an existing error with a specific code, message, and suggestion.
func WrapWithCode(err error, code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
		Cause:      err,
	}
}

// NewSampleError reports a failed OS-level enumeration. The tick that hit it is skipped.
func NewSampleError(err error, what string) *Error {
	return &Error{
		Code:    ErrSample,
		Message: fmt.Sprintf("Couldn't read %s", what),
		Cause:   errors.WithStack(err),
	}
}

// NewClockError reports a non-positive interval between two samples.
func NewClockError(elapsedSeconds float64) *Error {
	return &Error{
		Code:       ErrClock,
		Message:    fmt.Sprintf("Clock went sideways: %.3fs between samples", elapsedSeconds),
		Suggestion: "The sample was skipped; the next tick retries against the same baseline.",
	}
}

// NewTerminalInitError reports that the terminal could not be prepared at startup.
func NewTerminalInitError(err error, message string) *Error {
	return &Error{
		Code:       ErrTerminal,
		Message:    message,
		Suggestion: "ptop needs an interactive terminal. Run it directly, not through a pipe.",
		Cause:      err,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder

	// First line: failure symbol + main message
	b.WriteString(fmt.Sprintf("✗ %s\n", e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Cause.Error()))
	}

	if e.Suggestion != "" {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Suggestion))
	}

	return b.String()
}

// Unwrap returns the underlying cause for use with errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Short returns the message and cause on a single line, for log sinks.
func (e *Error) Short() string {
	if e.Cause == nil {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
}

// IsCode checks if an error is a structured Error with the given code.
func IsCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var ptopErr *Error
	if errors.As(err, &ptopErr) {
		return ptopErr.Code == code
	}
	return false
}

// Summary renders any error on one line, using Short for structured errors.
func Summary(err error) string {
	if err == nil {
		return ""
	}
	var ptopErr *Error
	if errors.As(err, &ptopErr) {
		return ptopErr.Short()
	}
	return err.Error()
}

// ExitError carries a process exit code up to main without printing anything extra.
type ExitError struct {
	Code int
}

// NewExitError creates an ExitError with the given code.
func NewExitError(code int) *ExitError {
	return &ExitError{Code: code}
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// GetExitCode extracts the code from an ExitError anywhere in the chain.
func GetExitCode(err error) (int, bool) {
	if err == nil {
		return 0, false
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code, true
	}
	return 0, false
}
