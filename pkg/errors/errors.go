// Package errors carries the coded errors that cliquer returns from every
// stage. A code survives wrapping, so the CLI can pick an exit message and
// the API server can pick a status without string matching.
//
// Codes group by prefix. INVALID_* is bad input, DEGENERATE_INPUT is a
// graph with nothing to enumerate, NOT_FOUND and FILE_NOT_FOUND are
// missing resources, and the rest are runtime failures.
//
//	if errors.Is(err, errors.ErrCodeInvalidPivot) {
//	    return usage()
//	}
//	return errors.Wrap(errors.ErrCodeDegenerateInput, err, "build %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code is the stable identifier of an error class.
type Code string

const (
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidEdge     Code = "INVALID_EDGE"
	ErrCodeInvalidBackend  Code = "INVALID_BACKEND"
	ErrCodeInvalidPivot    Code = "INVALID_PIVOT"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidPath     Code = "INVALID_PATH"
	ErrCodeDegenerateInput Code = "DEGENERATE_INPUT"

	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	ErrCodeNetwork  Code = "NETWORK_ERROR"
	ErrCodeTimeout  Code = "TIMEOUT"
	ErrCodeCanceled Code = "CANCELED"

	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error pairs a Code with a message and the error that caused it, if any.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	s := string(e.Code) + ": " + e.Message
	if e.Cause == nil {
		return s
	}
	return s + ": " + e.Cause.Error()
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error without a cause.
func New(code Code, format string, args ...any) *Error {
	return Wrap(code, nil, format, args...)
}

// Wrap returns an Error that keeps cause reachable through errors.Unwrap.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// outermost finds the first *Error in err's chain.
func outermost(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// Is reports whether the outermost coded error in err's chain has code.
func Is(err error, code Code) bool {
	e, ok := outermost(err)
	return ok && e.Code == code
}

// GetCode returns the code of the outermost coded error, or "".
func GetCode(err error) Code {
	if e, ok := outermost(err); ok {
		return e.Code
	}
	return ""
}

// UserMessage strips the code prefix and cause, leaving the text meant for
// a person. Uncoded errors are returned verbatim.
func UserMessage(err error) string {
	if e, ok := outermost(err); ok {
		return e.Message
	}
	return err.Error()
}

// HTTPStatus maps an error code to the status the API server responds with.
func HTTPStatus(err error) int {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidEdge, ErrCodeInvalidBackend,
		ErrCodeInvalidPivot, ErrCodeInvalidFormat, ErrCodeInvalidPath:
		return 400
	case ErrCodeDegenerateInput:
		return 422
	case ErrCodeNotFound, ErrCodeFileNotFound:
		return 404
	case ErrCodeTimeout:
		return 504
	default:
		return 500
	}
}
