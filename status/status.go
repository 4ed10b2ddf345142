// Package status defines the error codes and the error type used across the interpreter client packages.
//
// Errors are created with a stack trace (see github.com/pkg/errors), and the Code can be
// recovered from any wrapped error with CodeOf.
package status

import (
	"fmt"

	"github.com/pkg/errors"
)

// Error is an error with a Code attached, mirroring the PJRT_Error structure.
type Error struct {
	code Code
	msg  string
}

// New returns an *Error, without a stack trace: it is meant for sentinel errors.
// Use Errorf to create errors on the fly.
func New(code Code, msg string) *Error {
	return &Error{code: code, msg: msg}
}

// Errorf creates a new error with the given code and a stack trace.
func Errorf(code Code, format string, args ...any) error {
	return errors.WithStack(&Error{code: code, msg: fmt.Sprintf(format, args...)})
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.code, e.msg)
}

// Code returns the error code.
func (e *Error) Code() Code {
	return e.code
}

// Message returns the error message without the code.
func (e *Error) Message() string {
	return e.msg
}

// coder is implemented by errors that carry a Code.
type coder interface {
	Code() Code
}

// CodeOf returns the Code of the first error in err's chain that carries one.
// It returns CodeOK for a nil error and CodeUnknown if no error in the chain has a code.
func CodeOf(err error) Code {
	if err == nil {
		return CodeOK
	}
	var c coder
	if errors.As(err, &c) {
		return c.Code()
	}
	return CodeUnknown
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	return CodeOf(err) == code
}
