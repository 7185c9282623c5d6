package apperror

import (
	"fmt"
	"net/http"
)

var (
	ErrNotFound = New(
		CodeNotFound,
		"Resource not found",
		http.StatusNotFound,
	)

	ErrForbidden = New(
		CodeForbidden,
		"You do not have permission to access this resource",
		http.StatusForbidden,
	)

	ErrInternal = New(
		CodeInternalError,
		"An unexpected error occurred",
		http.StatusInternalServerError,
	)

	ErrUnauthorized = New(
		CodeUnauthorized,
		"Authentication is required",
		http.StatusUnauthorized,
	)

	ErrInvalidInput = New(
		CodeInvalidInput,
		"The provided input is invalid",
		http.StatusBadRequest,
	)
)

// RequiredField reports a missing mandatory field.
func RequiredField(field string) *AppError {
	return New(CodeValidation, fmt.Sprintf("%s is required", field), http.StatusBadRequest)
}

// InvalidField reports a field whose value failed validation.
func InvalidField(field string) *AppError {
	return New(CodeValidation, fmt.Sprintf("%s is invalid", field), http.StatusBadRequest)
}

// Validation builds a VALIDATION_ERROR with a caller supplied message.
func Validation(message string) *AppError {
	return New(CodeValidation, message, http.StatusBadRequest)
}

// Store wraps a failed record store call. The underlying message is kept so it can be
// surfaced to the admin.
func Store(err error, message string) *AppError {
	return Wrap(err, CodeStoreError, message, http.StatusBadGateway)
}
