package payrollerrors

import (
	"net/http"

	"spincraft-tracker/internal/shared/apperror"
)

var (
	ErrInvalidSnapshotID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid salary calculation ID",
		http.StatusBadRequest,
	)
	ErrSnapshotNotFound = apperror.New(
		apperror.CodeNotFound,
		"Salary calculation not found",
		http.StatusNotFound,
	)
	ErrAlreadyPaid = apperror.New(
		apperror.CodeInvalidState,
		"Salary calculation is already paid",
		http.StatusBadRequest,
	)
	ErrInvalidStatusFilter = apperror.New(
		apperror.CodeValidation,
		"status must be one of pending, paid",
		http.StatusBadRequest,
	)
	ErrInvalidOvertimeCap = apperror.New(
		apperror.CodeValidation,
		"overtime daily cap must not exceed 24 hours",
		http.StatusBadRequest,
	)
)
