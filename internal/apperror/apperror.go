package apperror

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error independently of its message
type Kind string

const (
	KindInvalidInput  Kind = "invalid_input"
	KindNotFound      Kind = "not_found"
	KindForbidden     Kind = "forbidden"
	KindUnauthorized  Kind = "unauthorized"
	KindQuotaExceeded Kind = "quota_exceeded"
	KindConflict      Kind = "conflict"
	KindTimeout       Kind = "timeout"
	KindStore         Kind = "store"
)

var statusByKind = map[Kind]int{
	KindInvalidInput:  http.StatusBadRequest,
	KindNotFound:      http.StatusNotFound,
	KindForbidden:     http.StatusForbidden,
	KindUnauthorized:  http.StatusUnauthorized,
	KindQuotaExceeded: http.StatusBadRequest,
	KindConflict:      http.StatusConflict,
	KindTimeout:       http.StatusServiceUnavailable,
	KindStore:         http.StatusInternalServerError,
}

// Error is the error type returned by services. Message is safe to show to clients,
// Err keeps the underlying cause for logging.
type Error struct {
	Kind    Kind
	Message string
	Err     error
	// Write marks a failed write whose outcome is unknown; repeating it may duplicate data
	Write bool
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Status returns the HTTP status code for the error kind
func (e *Error) Status() int {
	if status, ok := statusByKind[e.Kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// Retryable reports whether the caller may safely retry the failed operation
func (e *Error) Retryable() bool {
	return e.Kind == KindTimeout && !e.Write
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func InvalidInput(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidInput, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Forbidden(format string, args ...any) *Error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

func Unauthorized(format string, args ...any) *Error {
	return &Error{Kind: KindUnauthorized, Message: fmt.Sprintf(format, args...)}
}

func QuotaExceeded(format string, args ...any) *Error {
	return &Error{Kind: KindQuotaExceeded, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// Store wraps a persistence failure. A context deadline in the chain becomes a Timeout.
func Store(op string, err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindTimeout, Message: "Store did not respond in time", Err: fmt.Errorf("%s: %w", op, err)}
	}
	return &Error{Kind: KindStore, Message: "Server Error", Err: fmt.Errorf("%s: %w", op, err)}
}

// StoreWrite wraps a failed non-idempotent write. A timeout keeps its status but is
// never reported as retryable.
func StoreWrite(op string, err error) *Error {
	appErr := Store(op, err)
	appErr.Write = true
	return appErr
}

// As extracts an *Error from err, if any
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Is reports whether err carries the given kind
func Is(err error, kind Kind) bool {
	appErr, ok := As(err)
	return ok && appErr.Kind == kind
}
