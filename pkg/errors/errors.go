// Package errors provides structured error handling for the application
// Following enterprise patterns for error management and observability
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode represents an error code
type ErrorCode string

// Common error codes following RESTful API conventions
const (
	// Client errors (4xx)
	CodeBadRequest       ErrorCode = "BAD_REQUEST"
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	// Server errors (5xx)
	CodeInternal      ErrorCode = "INTERNAL_ERROR"
	CodeConfiguration ErrorCode = "CONFIGURATION_ERROR"
	CodeDatabaseError ErrorCode = "DATABASE_ERROR"

	// Business logic errors
	CodeProfileNotFound      ErrorCode = "PROFILE_NOT_FOUND"
	CodeMealPlanNotFound     ErrorCode = "MEAL_PLAN_NOT_FOUND"
	CodeShoppingListNotFound ErrorCode = "SHOPPING_LIST_NOT_FOUND"
	CodeShoppingItemNotFound ErrorCode = "SHOPPING_ITEM_NOT_FOUND"
	CodeGenerationFailed     ErrorCode = "GENERATION_FAILED"
)

// AppError represents an application error with structured information
type AppError struct {
	Code     ErrorCode              `json:"code"`
	Message  string                 `json:"message"`
	Details  string                 `json:"details,omitempty"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
	Cause    error                  `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// StatusCode returns the appropriate HTTP status code
func (e *AppError) StatusCode() int {
	switch e.Code {
	case CodeBadRequest, CodeValidationFailed:
		return http.StatusBadRequest
	case CodeNotFound, CodeProfileNotFound, CodeMealPlanNotFound,
		CodeShoppingListNotFound, CodeShoppingItemNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// WithMetadata adds metadata to the error
func (e *AppError) WithMetadata(key string, value interface{}) *AppError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// WithCause adds a cause error
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// NewAppError creates a new application error
func NewAppError(code ErrorCode, message, details string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// NewBadRequestError creates a bad request error
func NewBadRequestError(message string) *AppError {
	return NewAppError(CodeBadRequest, message, "")
}

// NewValidationError creates a validation error
func NewValidationError(details string) *AppError {
	return NewAppError(CodeValidationFailed, "Validation failed", details)
}

// NewConfigurationError creates a fatal configuration error.
// Configuration errors must surface at startup, never be downgraded.
func NewConfigurationError(details string) *AppError {
	return NewAppError(CodeConfiguration, "Invalid configuration", details)
}

// NewProfileNotFoundError creates a not found error for a dietary profile
func NewProfileNotFoundError(id string) *AppError {
	return NewAppError(CodeProfileNotFound, fmt.Sprintf("Dietary profile not found: %s", id), "")
}

// NewMealPlanNotFoundError creates a not found error for a meal plan
func NewMealPlanNotFoundError(id string) *AppError {
	return NewAppError(CodeMealPlanNotFound, fmt.Sprintf("Meal plan not found: %s", id), "")
}

// NewShoppingListNotFoundError creates a not found error for a shopping list
func NewShoppingListNotFoundError(id string) *AppError {
	return NewAppError(CodeShoppingListNotFound, fmt.Sprintf("Shopping list not found: %s", id), "")
}

// NewShoppingItemNotFoundError creates a not found error for a shopping list item
func NewShoppingItemNotFoundError(id string) *AppError {
	return NewAppError(CodeShoppingItemNotFound, fmt.Sprintf("Shopping list item not found: %s", id), "")
}

// NewDatabaseError creates a database error
func NewDatabaseError(operation string, cause error) *AppError {
	return NewAppError(CodeDatabaseError, "Database operation failed", operation).
		WithCause(cause)
}

// NewGenerationError creates an AI generation error.
// Generation errors are recovered with placeholder data at the generator
// boundary and should not reach HTTP handlers.
func NewGenerationError(details string, cause error) *AppError {
	return NewAppError(CodeGenerationFailed, "AI generation failed", details).
		WithCause(cause)
}

// NewInternalError creates an internal server error
func NewInternalError(message string, cause error) *AppError {
	return NewAppError(CodeInternal, message, "").WithCause(cause)
}

// IsNotFound checks if an error maps to a 404
func IsNotFound(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode() == http.StatusNotFound
	}
	return false
}

// AsAppError extracts an AppError from an error chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
