package errors

import (
	"fmt"
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeNotFound   ErrorType = "not_found"
	ErrorTypeParse      ErrorType = "parse"
	ErrorTypeDomain     ErrorType = "domain"
	ErrorTypeProcessing ErrorType = "processing"
	ErrorTypeRender     ErrorType = "render"
	ErrorTypeInternal   ErrorType = "internal"
)

// Exit codes reported to the shell. Validation failures are usage errors;
// everything else is a runtime failure.
const (
	ExitUsage   = 2
	ExitFailure = 1
)

// AppError represents a structured application error
type AppError struct {
	Type     ErrorType `json:"type"`
	Message  string    `json:"message"`
	ExitCode int       `json:"exit_code"`
	Cause    error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *AppError {
	return &AppError{
		Type:     ErrorTypeValidation,
		Message:  message,
		ExitCode: ExitUsage,
		Cause:    cause,
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string, cause error) *AppError {
	return &AppError{
		Type:     ErrorTypeNotFound,
		Message:  message,
		ExitCode: ExitFailure,
		Cause:    cause,
	}
}

// NewParseError creates a new parse error
func NewParseError(message string, cause error) *AppError {
	return &AppError{
		Type:     ErrorTypeParse,
		Message:  message,
		ExitCode: ExitFailure,
		Cause:    cause,
	}
}

// NewDomainError creates a new numeric-domain error
func NewDomainError(message string, cause error) *AppError {
	return &AppError{
		Type:     ErrorTypeDomain,
		Message:  message,
		ExitCode: ExitFailure,
		Cause:    cause,
	}
}

// NewProcessingError creates a new processing error
func NewProcessingError(message string, cause error) *AppError {
	return &AppError{
		Type:     ErrorTypeProcessing,
		Message:  message,
		ExitCode: ExitFailure,
		Cause:    cause,
	}
}

// NewRenderError creates a new chart rendering error
func NewRenderError(message string, cause error) *AppError {
	return &AppError{
		Type:     ErrorTypeRender,
		Message:  message,
		ExitCode: ExitFailure,
		Cause:    cause,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:     ErrorTypeInternal,
		Message:  message,
		ExitCode: ExitFailure,
		Cause:    cause,
	}
}

// IsType checks if the error is of a specific type
func IsType(err error, errorType ErrorType) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Type == errorType
	}
	return false
}

// GetExitCode extracts the process exit code from an error
func GetExitCode(err error) int {
	if appErr, ok := err.(*AppError); ok {
		return appErr.ExitCode
	}
	return ExitFailure
}
