// Package errors provides coded errors for codeshot.
//
// Every failure that reaches the user carries a [Code]. The editor turns
// codes into notifications, and cmd/codeshot maps them to exit statuses.
// Codes group as follows:
//   - INVALID_* and FILE_NOT_FOUND: bad input or configuration ([Code.Validation])
//   - *_FAILED: a capture, clipboard or file-save collaborator rejected the work
//   - NOT_MOUNTED, BUSY: the preview cannot be exported right now
//   - UNSUPPORTED, INTERNAL_ERROR: the platform or the program is at fault
//
// Usage:
//
//	err := errors.Wrap(errors.ErrCodeSaveFailed, cause, "save %s", name)
//	if errors.Is(err, errors.ErrCodeSaveFailed) {
//	    notify(errors.UserMessage(err))
//	}
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code is a machine-readable error code.
type Code string

const (
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidLanguage Code = "INVALID_LANGUAGE"
	ErrCodeInvalidTheme    Code = "INVALID_THEME"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidDensity  Code = "INVALID_DENSITY"
	ErrCodeInvalidColor    Code = "INVALID_COLOR"
	ErrCodeInvalidPath     Code = "INVALID_PATH"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"
	ErrCodeFileNotFound    Code = "FILE_NOT_FOUND"

	ErrCodeNotMounted Code = "NOT_MOUNTED"
	ErrCodeBusy       Code = "BUSY"

	ErrCodeCaptureFailed   Code = "CAPTURE_FAILED"
	ErrCodeClipboardFailed Code = "CLIPBOARD_FAILED"
	ErrCodeSaveFailed      Code = "SAVE_FAILED"

	ErrCodeUnsupported Code = "UNSUPPORTED"
	ErrCodeInternal    Code = "INTERNAL_ERROR"
)

// Validation reports whether c describes bad input rather than a failure
// while doing the work.
func (c Code) Validation() bool {
	return strings.HasPrefix(string(c), "INVALID_") || c == ErrCodeFileNotFound
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

// New returns an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an Error with a formatted message and cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether any *Error in err's chain has code.
func Is(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// GetCode returns the code of the outermost *Error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage renders err without codes, for notifications and the status
// line: "save demo.png: open /out/demo.png: permission denied".
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + UserMessage(e.Cause)
}
