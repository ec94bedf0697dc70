// Package dErrors provides coded domain errors. Services return these so
// transport layers can translate them into HTTP statuses without inspecting
// message strings.
package dErrors

import "errors"

// ErrorCode classifies a domain failure.
type ErrorCode string

const (
	CodeBadRequest ErrorCode = "bad_request"
	CodeNotFound   ErrorCode = "not_found"
	CodeInternal   ErrorCode = "internal"
)

// DomainError carries a machine-readable code alongside a human message.
type DomainError struct {
	Code    ErrorCode
	Message string
	cause   error
}

func (e *DomainError) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *DomainError) Unwrap() error { return e.cause }

// New creates a DomainError with the given code and message.
func New(code ErrorCode, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// Wrap creates a DomainError that preserves the underlying cause for
// errors.Is/As chains and error reporting.
func Wrap(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{Code: code, Message: message, cause: cause}
}

// Is reports whether err carries the given code anywhere in its chain.
func Is(err error, code ErrorCode) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf extracts the code from err, defaulting to CodeInternal for errors
// that did not originate in the domain layer.
func CodeOf(err error) ErrorCode {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}
