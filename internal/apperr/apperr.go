// Package apperr carries the error taxonomy every handler maps to an
// HTTP status. Services return *Error so call sites handle each kind
// explicitly instead of matching on message strings.
package apperr

import "net/http"

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindAuth
	KindLocked
	KindInvalidOtp
)

type Error struct {
	Kind    Kind
	Message string
	// Attempts is only meaningful for KindInvalidOtp: the counter value
	// after the failed submission.
	Attempts int
	Err      error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

func Validation(msg string) *Error { return &Error{Kind: KindValidation, Message: msg} }

func NotFound(msg string) *Error { return &Error{Kind: KindNotFound, Message: msg} }

func Auth(msg string) *Error { return &Error{Kind: KindAuth, Message: msg} }

func Locked(msg string) *Error { return &Error{Kind: KindLocked, Message: msg} }

func InvalidOtp(msg string, attempts int) *Error {
	return &Error{Kind: KindInvalidOtp, Message: msg, Attempts: attempts}
}

// Internal wraps an unexpected failure. The wrapped cause is for
// server-side logs only; callers see the generic message.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "Internal server error", Err: err}
}

// Status maps an error kind to its HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation, KindAuth, KindInvalidOtp:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindLocked:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
