package client

import (
	"errors"
	"fmt"
	"testing"
)

func TestAPIError_Error(t *testing.T) {
	tests := []struct {
		name     string
		apiError *APIError
		expected string
	}{
		{
			name: "transport error with wrapped error and status",
			apiError: &APIError{
				StatusCode: 500,
				Class:      ErrorClassTransport,
				Message:    "unexpected status 500 Internal Server Error",
				Err:        errors.New("connection refused"),
			},
			expected: "polly transport error (status 500): unexpected status 500 Internal Server Error: connection refused",
		},
		{
			name: "transport error without status",
			apiError: &APIError{
				Class:   ErrorClassTransport,
				Message: "request failed",
				Err:     errors.New("dial tcp: connection refused"),
			},
			expected: "polly transport error: request failed: dial tcp: connection refused",
		},
		{
			name: "domain error without wrapped error",
			apiError: &APIError{
				StatusCode: 400,
				Class:      ErrorClassDomain,
				Message:    "Registration failed: Username already registered",
			},
			expected: "polly domain error (status 400): Registration failed: Username already registered",
		},
		{
			name: "validation error without status or wrapped error",
			apiError: &APIError{
				Class:   ErrorClassValidation,
				Message: "missing access_token in login response",
			},
			expected: "polly validation error: missing access_token in login response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.apiError.Error()
			if result != tt.expected {
				t.Errorf("Error() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestAPIError_Unwrap(t *testing.T) {
	wrappedErr := errors.New("wrapped error")
	apiError := &APIError{
		Class:   ErrorClassTransport,
		Message: "request failed",
		Err:     wrappedErr,
	}

	if apiError.Unwrap() != wrappedErr {
		t.Errorf("Unwrap() = %v, want %v", apiError.Unwrap(), wrappedErr)
	}

	if !errors.Is(apiError, wrappedErr) {
		t.Error("errors.Is should work with wrapped error")
	}
}

func TestAPIError_UnwrapNil(t *testing.T) {
	apiError := &APIError{
		StatusCode: 404,
		Class:      ErrorClassDomain,
		Message:    "Poll not found",
	}

	if unwrapped := apiError.Unwrap(); unwrapped != nil {
		t.Errorf("Unwrap() = %v, want nil", unwrapped)
	}
}

func TestErrorClassPredicates(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		isDomain     bool
		isTransport  bool
		isValidation bool
	}{
		{
			name:     "domain error",
			err:      newDomainError(401, "Unauthorized: Invalid or missing JWT token"),
			isDomain: true,
		},
		{
			name:        "transport error",
			err:         newTransportError(0, "request failed", errors.New("timeout")),
			isTransport: true,
		},
		{
			name:         "validation error",
			err:          newValidationError("malformed response body", nil),
			isValidation: true,
		},
		{
			name:     "wrapped domain error",
			err:      fmt.Errorf("cast vote: %w", newDomainError(404, "Poll or option not found")),
			isDomain: true,
		},
		{
			name: "plain error",
			err:  errors.New("something else"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDomainError(tt.err); got != tt.isDomain {
				t.Errorf("IsDomainError() = %v, want %v", got, tt.isDomain)
			}
			if got := IsTransportError(tt.err); got != tt.isTransport {
				t.Errorf("IsTransportError() = %v, want %v", got, tt.isTransport)
			}
			if got := IsValidationError(tt.err); got != tt.isValidation {
				t.Errorf("IsValidationError() = %v, want %v", got, tt.isValidation)
			}
		})
	}
}
