package attendanceerrors

import (
	"net/http"

	"spincraft-tracker/internal/shared/apperror"
)

var (
	ErrDuplicateEmployee = apperror.New(
		apperror.CodeValidation,
		"Each employee may appear only once per date",
		http.StatusBadRequest,
	)
	ErrMissingEmployee = apperror.New(
		apperror.CodeValidation,
		"employee_id is required",
		http.StatusBadRequest,
	)
	ErrUnknownEmployee = apperror.New(
		apperror.CodeValidation,
		"One or more employees do not exist",
		http.StatusBadRequest,
	)
	ErrInvalidMonth = apperror.New(
		apperror.CodeValidation,
		"Invalid month format, expected YYYY-MM",
		http.StatusBadRequest,
	)
)
