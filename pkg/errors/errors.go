package errors

import (
	"fmt"
)

// ErrorCategory represents the category of error for handling
type ErrorCategory string

const (
	CategoryDeclined          ErrorCategory = "declined"
	CategoryInsufficientFunds ErrorCategory = "insufficient_funds"
	CategoryInvalidCard       ErrorCategory = "invalid_card"
	CategoryExpiredCard       ErrorCategory = "expired_card"
	CategoryFraud             ErrorCategory = "fraud"
	CategorySystemError       ErrorCategory = "system_error"
	CategoryNetworkError      ErrorCategory = "network_error"
	CategoryInvalidRequest    ErrorCategory = "invalid_request"
	CategoryNotAllowed        ErrorCategory = "not_allowed"
)

// PaymentError represents a structured error payload returned by the
// payment provider, with the message already resolved for display.
type PaymentError struct {
	Code        string
	Message     string
	Param       string
	IsRetriable bool
	Category    ErrorCategory
}

func (e *PaymentError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// NewPaymentError creates a new payment error
func NewPaymentError(code, message string, category ErrorCategory, retriable bool) *PaymentError {
	return &PaymentError{
		Code:        code,
		Message:     message,
		Category:    category,
		IsRetriable: retriable,
	}
}

// ValidationError represents input validation errors raised before any
// network call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// TransportError represents a network-level failure reaching the
// provider. The user-facing message stays generic but the underlying
// cause is preserved for errors.Is/As.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "there was a problem, please try again"
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// NewTransportError wraps a transport failure
func NewTransportError(err error) *TransportError {
	return &TransportError{Err: err}
}

// DecodeError represents a provider response body that could not be
// decoded as structured data.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode provider response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// UnrecognizedResponseError represents a decoded response that matches
// neither the success shape nor the known error shape.
type UnrecognizedResponseError struct {
	StatusCode int
}

func (e *UnrecognizedResponseError) Error() string {
	return fmt.Sprintf("unrecognized provider response (status %d)", e.StatusCode)
}
