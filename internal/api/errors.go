package api

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind categorizes a client failure
type ErrorKind string

const (
	// KindTransport covers unreachable hosts, timeouts and non-success statuses
	KindTransport ErrorKind = "transport"

	// KindValidation covers responses whose shape does not match the contract
	KindValidation ErrorKind = "validation"

	// KindConfiguration covers an unusable client configuration
	KindConfiguration ErrorKind = "configuration"

	// KindInternal covers request construction failures
	KindInternal ErrorKind = "internal"
)

// Error is returned by every Client operation
type Error struct {
	Kind ErrorKind `json:"kind"`

	// Op names the operation, e.g. "submit" or "fetch_history"
	Op string `json:"op,omitempty"`

	// StatusCode is set when the server answered with a non-success status
	StatusCode int `json:"status_code,omitempty"`

	Message string `json:"message"`

	Cause error `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	var parts []string

	if e.Op != "" {
		parts = append(parts, fmt.Sprintf("op=%s", e.Op))
	}

	parts = append(parts, fmt.Sprintf("kind=%s", e.Kind))

	if e.StatusCode > 0 {
		parts = append(parts, fmt.Sprintf("status=%d", e.StatusCode))
	}

	parts = append(parts, e.Message)

	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("cause=%s", e.Cause.Error()))
	}

	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches another *Error of the same kind
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

func newError(kind ErrorKind, op, message string) *Error {
	return &Error{Kind: kind, Op: op, Message: message}
}

func newErrorWithCause(kind ErrorKind, op, message string, cause error) *Error {
	return &Error{Kind: kind, Op: op, Message: message, Cause: cause}
}

// KindOf returns the kind of err, or KindInternal for foreign errors
func KindOf(err error) ErrorKind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindInternal
}

// IsTransport reports whether err is a transport error
func IsTransport(err error) bool {
	return KindOf(err) == KindTransport
}

// IsValidation reports whether err is a validation error
func IsValidation(err error) bool {
	return KindOf(err) == KindValidation
}
