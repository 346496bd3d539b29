// Package apperr defines the error kinds shared by every domain package.
// Domain sentinels wrap one of the kinds so that the HTTP layer can map them
// to status codes without knowing each package's errors.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
)

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }

// NotFound returns an error with the given message that matches ErrNotFound.
func NotFound(msg string) error {
	return &kindError{kind: ErrNotFound, msg: msg}
}

func Validation(msg string) error {
	return &kindError{kind: ErrValidation, msg: msg}
}

func Validationf(format string, args ...any) error {
	return &kindError{kind: ErrValidation, msg: fmt.Sprintf(format, args...)}
}

func Conflict(msg string) error {
	return &kindError{kind: ErrConflict, msg: msg}
}

// Detailf returns an error that matches sentinel (and the sentinel's kind)
// while carrying a more specific message.
func Detailf(sentinel error, format string, args ...any) error {
	return &kindError{kind: sentinel, msg: fmt.Sprintf(format, args...)}
}

// Message returns the client-safe message of the outermost domain error in the
// chain, or fallback when err carries no kind.
func Message(err error, fallback string) string {
	var ke *kindError
	if errors.As(err, &ke) {
		return ke.msg
	}
	return fallback
}
