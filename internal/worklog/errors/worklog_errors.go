package worklogerrors

import (
	"net/http"

	"spincraft-tracker/internal/shared/apperror"
)

var (
	ErrWorkLogNotFound = apperror.New(
		apperror.CodeNotFound,
		"Work log not found",
		http.StatusNotFound,
	)
	ErrWorkLogExists = apperror.New(
		apperror.CodeConflict,
		"A work log already exists for this employee on this date",
		http.StatusConflict,
	)
	ErrInvalidWorkLogID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid work log ID",
		http.StatusBadRequest,
	)
	ErrHoursOutOfRange = apperror.New(
		apperror.CodeValidation,
		"total_hours must be between 0 and 24",
		http.StatusBadRequest,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeValidation,
		"status must be one of present, absent, overtime, holiday",
		http.StatusBadRequest,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeValidation,
		"Invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidTime = apperror.New(
		apperror.CodeValidation,
		"Invalid time format, expected HH:MM",
		http.StatusBadRequest,
	)
	ErrInvalidRange = apperror.New(
		apperror.CodeValidation,
		"start_date must not be after end_date",
		http.StatusBadRequest,
	)
)
