package client

import (
	"errors"
	"fmt"
)

// ErrorClass represents a classification of client errors.
type ErrorClass string

const (
	// ErrorClassTransport represents network-level failures and unexpected
	// HTTP status codes.
	ErrorClassTransport ErrorClass = "transport"

	// ErrorClassValidation represents malformed response payloads.
	ErrorClassValidation ErrorClass = "validation"

	// ErrorClassDomain represents business-rule rejections reported by the
	// server (duplicate user, unauthorized vote, missing poll).
	ErrorClassDomain ErrorClass = "domain"
)

// APIError represents a Polly API error with additional context.
type APIError struct {
	StatusCode int
	Class      ErrorClass
	Message    string
	Err        error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	switch {
	case e.Err != nil && e.StatusCode > 0:
		return fmt.Sprintf("polly %s error (status %d): %s: %v",
			e.Class, e.StatusCode, e.Message, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("polly %s error: %s: %v", e.Class, e.Message, e.Err)
	case e.StatusCode > 0:
		return fmt.Sprintf("polly %s error (status %d): %s",
			e.Class, e.StatusCode, e.Message)
	default:
		return fmt.Sprintf("polly %s error: %s", e.Class, e.Message)
	}
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *APIError) Unwrap() error {
	return e.Err
}

// IsDomainError reports whether err is a server-side business rejection.
func IsDomainError(err error) bool {
	return hasClass(err, ErrorClassDomain)
}

// IsTransportError reports whether err is a network-level or unexpected
// status failure.
func IsTransportError(err error) bool {
	return hasClass(err, ErrorClassTransport)
}

// IsValidationError reports whether err was caused by a malformed response
// payload.
func IsValidationError(err error) bool {
	return hasClass(err, ErrorClassValidation)
}

func hasClass(err error, class ErrorClass) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Class == class
}

func newTransportError(statusCode int, message string, err error) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Class:      ErrorClassTransport,
		Message:    message,
		Err:        err,
	}
}

func newValidationError(message string, err error) *APIError {
	return &APIError{
		Class:   ErrorClassValidation,
		Message: message,
		Err:     err,
	}
}

func newDomainError(statusCode int, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Class:      ErrorClassDomain,
		Message:    message,
	}
}
