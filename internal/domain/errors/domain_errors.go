package errors

import (
	"errors"
	"fmt"
)

var (
	// User errors
	ErrUserNotFound = errors.New("user not found")

	// Purchase errors
	ErrDuplicatePurchase = errors.New("purchase has already been recorded")

	// Payment errors
	ErrPaymentNotConfigured = errors.New("payment provider is not configured")
	ErrPaymentProvider      = errors.New("payment provider request failed")

	// Webhook errors
	ErrWebhookNotConfigured = errors.New("webhook signing secret is not configured")
	ErrSignatureInvalid     = errors.New("webhook signature verification failed")
)

// ValidationError wraps a field validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field '%s': %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is a validation error
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
