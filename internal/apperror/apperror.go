// Package apperror defines the error taxonomy shared by every layer and its HTTP mapping.
package apperror

import (
	"errors"
	"net/http"
	"strings"
)

// Kind classifies an application error
type Kind int

// Error kinds
const (
	KindInternal Kind = iota
	KindBadRequest
	KindUnauthenticated
	KindForbidden
	KindNotFound
)

// genericInternalMessage is what clients see for anything we didn't anticipate.
const genericInternalMessage = "Something went wrong, try again later"

// Error is a domain error carrying a client safe message.
type Error struct {
	Kind    Kind
	Message string
	// Details holds one message per invalid field for aggregated validation failures.
	Details []string
	// Err is the underlying cause, never sent to the client.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Status returns the HTTP status code for the error kind
func (e *Error) Status() int {
	switch e.Kind {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// BadRequest reports malformed or rejected input
func BadRequest(msg string) *Error {
	return &Error{Kind: KindBadRequest, Message: msg}
}

// Validation aggregates every field level message into a single BadRequest.
func Validation(details []string) *Error {
	return &Error{
		Kind:    KindBadRequest,
		Message: strings.Join(details, ", "),
		Details: details,
	}
}

// Unauthenticated reports a missing or invalid credential
func Unauthenticated(msg string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: msg}
}

// Forbidden reports an authenticated caller acting outside its rights
func Forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

// NotFound reports a missing record
func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// Internal wraps an unexpected failure. The cause is kept for logging only.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: genericInternalMessage, Err: err}
}

// From returns err as *Error, converting anything unknown into Internal.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		if appErr.Kind == KindInternal && appErr.Message != genericInternalMessage {
			hidden := *appErr
			hidden.Message = genericInternalMessage
			return &hidden
		}
		return appErr
	}
	return Internal(err)
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}
