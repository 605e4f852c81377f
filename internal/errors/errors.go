package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes for categorizing errors
const (
	ErrConfig  = "CONFIG"
	ErrInput   = "INPUT"
	ErrPackage = "PACKAGE"
	ErrSSH     = "SSH"
	ErrGPG     = "GPG"
	ErrGit     = "GIT"
	ErrExec    = "EXEC"
)

// Error represents a structured error with code, message, suggestion, and optional cause.
// Fatal errors render as:
//
//	✗ <What failed>
//
//	  <Why it failed - technical details>
//
//	  <How to fix it - actionable steps>
//
// Advisory errors mark a skipped step. The session reports them and keeps going.
type Error struct {
	Code       string
	Message    string
	Suggestion string
	Cause      error
	Advisory   bool
}

// New creates a new structured error with the given code, message, and suggestion.
func New(code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
	}
}

// Advise creates an advisory error: the current step is skipped, the run continues.
func Advise(code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
		Advisory:   true,
	}
}

// Wrap wraps an existing error with a message, defaulting to ErrExec code.
func Wrap(err error, message string) *Error {
	return &Error{
		Code:    ErrExec,
		Message: message,
		Cause:   err,
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

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder

	symbol := "✗"
	if e.Advisory {
		symbol = "⊘"
	}
	b.WriteString(fmt.Sprintf("%s %s\n", symbol, e.Message))

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

// IsCode checks if an error is a structured Error with the given code.
func IsCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var dbErr *Error
	if errors.As(err, &dbErr) {
		return dbErr.Code == code
	}
	return false
}

// IsAdvisory reports whether err is a structured advisory Error.
// Unstructured errors are always fatal.
func IsAdvisory(err error) bool {
	if err == nil {
		return false
	}
	var dbErr *Error
	if errors.As(err, &dbErr) {
		return dbErr.Advisory
	}
	return false
}
