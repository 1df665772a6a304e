// Package errors attaches machine-readable codes to the errors uiforge
// returns at its document and file boundaries.
//
// Domain packages keep plain sentinel errors (scene.ErrCycle,
// command.ErrReentrant) and wrap them with fmt.Errorf. A [Code] is added
// where a caller must tell bad input apart from a bug: loading a file,
// looking up an element, assigning a property. The CLI maps codes to exit
// statuses with [Code.ExitCode] and prints [UserMessage] for input errors.
//
//	err := errors.New(errors.ErrCodeElementNotFound, "no element named %q", name)
//	if errors.Is(err, errors.ErrCodeElementNotFound) {
//	    // suggest inspect
//	}
//
//	err = errors.Wrap(errors.ErrCodeInvalidFormat, decodeErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code identifies a category of failure.
type Code string

const (
	// Bad input: the file, flag or value given by the user is wrong.
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidDocument Code = "INVALID_DOCUMENT"
	ErrCodeInvalidProperty Code = "INVALID_PROPERTY"
	ErrCodeInvalidPath     Code = "INVALID_PATH"
	ErrCodeUnsupported     Code = "UNSUPPORTED"

	// Missing: a named file or element does not exist.
	ErrCodeElementNotFound Code = "ELEMENT_NOT_FOUND"
	ErrCodeFileNotFound    Code = "FILE_NOT_FOUND"

	// Bug: an invariant of the scene graph or command stack was broken.
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Exit statuses returned by [Code.ExitCode].
const (
	ExitFailure  = 1
	ExitInput    = 2
	ExitNotFound = 3
)

// ExitCode returns the process exit status for an error with code c.
// Unknown and internal codes map to [ExitFailure].
func (c Code) ExitCode() int {
	switch c {
	case ErrCodeInvalidInput, ErrCodeInvalidFormat, ErrCodeInvalidDocument,
		ErrCodeInvalidProperty, ErrCodeInvalidPath, ErrCodeUnsupported:
		return ExitInput
	case ErrCodeElementNotFound, ErrCodeFileNotFound:
		return ExitNotFound
	default:
		return ExitFailure
	}
}

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an error with code and a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an error with code and a formatted message around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	return code != "" && GetCode(err) == code
}

// GetCode returns the code of the outermost *Error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns err without the code prefix.
func UserMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}
