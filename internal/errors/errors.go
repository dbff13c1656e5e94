package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds surfaced by the connector
var (
	// Client errors
	ErrInvalidRequest = errors.New("invalid request")
	ErrStateMismatch  = errors.New("state does not match")
	ErrNotFound       = errors.New("not found")

	// Provider errors
	ErrUpstream = errors.New("upstream error")

	// General errors
	ErrUnexpected = errors.New("unexpected error")
)

// Error carries the HTTP status an error is surfaced with, together with the
// detail shown to the caller.
type Error struct {
	Kind   error
	Status int
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

// Unwrap exposes both the kind sentinel and the underlying cause.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func InvalidRequest(detail string) *Error {
	return &Error{Kind: ErrInvalidRequest, Status: http.StatusBadRequest, Detail: detail}
}

func StateMismatch() *Error {
	return &Error{Kind: ErrStateMismatch, Status: http.StatusBadRequest, Detail: "State does not match."}
}

func NotFound(detail string) *Error {
	return &Error{Kind: ErrNotFound, Status: http.StatusBadRequest, Detail: detail}
}

// Upstream reports a non-success status returned by the provider.
func Upstream(status int, detail string) *Error {
	return &Error{Kind: ErrUpstream, Status: status, Detail: detail}
}

// Unexpected wraps any other failure as a 500 keeping the original message.
func Unexpected(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{Kind: ErrUnexpected, Status: http.StatusInternalServerError, Detail: err.Error(), Err: err}
}

// StatusCode returns the HTTP status for err, defaulting to 500.
func StatusCode(err error) int {
	var e *Error
	if errors.As(err, &e) && e.Status != 0 {
		return e.Status
	}
	return http.StatusInternalServerError
}

// Detail returns the caller facing message for err.
func Detail(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Detail != "" {
			return e.Detail
		}
		return e.Kind.Error()
	}
	return err.Error()
}

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
