package autherrors

import (
	"net/http"

	"spincraft-tracker/internal/shared/apperror"
)

var (
	ErrInvalidCredentials = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid username or password",
		http.StatusUnauthorized,
	)
	ErrTokenGenerationFailed = apperror.New(
		apperror.CodeInternalError,
		"Failed to issue session token",
		http.StatusInternalServerError,
	)
	ErrAdminNotFound = apperror.New(
		apperror.CodeUnauthorized,
		"Session no longer valid",
		http.StatusUnauthorized,
	)
)
