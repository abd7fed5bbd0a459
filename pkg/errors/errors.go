// Package errors defines the coded errors returned across the pipeline, the
// CLI and the HTTP API.
//
// A code is stable and machine readable; the API maps it to a status and
// the CLI prints the message. Leaf packages keep plain sentinel errors and
// the pipeline converts them at its boundary:
//
//	t, err := pedigree.Build(r, root, cfg)
//	if stderrors.Is(err, pedigree.ErrRootNotFound) {
//	    return errors.Wrap(errors.ErrCodeRootNotFound, err, "root %s", root)
//	}
//
// Codes group as INVALID_* (bad input or options), *_NOT_FOUND and
// NO_INDIVIDUALS (nothing to chart), and INTERNAL_ERROR / UNSUPPORTED.
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error class.
type Code string

const (
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidGEDCOM Code = "INVALID_GEDCOM"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidXref   Code = "INVALID_XREF"
	ErrCodeTooLarge      Code = "TOO_LARGE"

	ErrCodeNotFound      Code = "NOT_FOUND"
	ErrCodeRootNotFound  Code = "ROOT_NOT_FOUND"
	ErrCodeNoIndividuals Code = "NO_INDIVIDUALS"
	ErrCodeFileNotFound  Code = "FILE_NOT_FOUND"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error carries a code, a message for people and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	msg := string(e.Code) + ": " + e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns a coded error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns a coded error caused by cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Cause = cause
	return e
}

// Is reports whether any coded error in err's chain has code.
func Is(err error, code Code) bool {
	var e *Error
	for errors.As(err, &e) {
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// GetCode returns the code of the outermost coded error in err's chain, or
// "" when there is none.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the message of the outermost coded error without its
// code and cause, or err.Error() for other errors.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
