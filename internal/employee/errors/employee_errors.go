package employeeerrors

import (
	"net/http"

	"spincraft-tracker/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrEmployeeInactive = apperror.New(
		apperror.CodeValidation,
		"Employee is inactive",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrInvalidJoiningDate = apperror.New(
		apperror.CodeValidation,
		"Invalid joining_date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrNegativeRate = apperror.New(
		apperror.CodeValidation,
		"salary_per_hour must be zero or greater",
		http.StatusBadRequest,
	)
	ErrMissingName = apperror.New(
		apperror.CodeValidation,
		"name is required",
		http.StatusBadRequest,
	)
	ErrInvalidGender = apperror.New(
		apperror.CodeValidation,
		"gender must be male or female",
		http.StatusBadRequest,
	)
)
