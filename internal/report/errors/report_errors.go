package reporterrors

import (
	"net/http"

	"spincraft-tracker/internal/shared/apperror"
)

var (
	ErrInvalidFormat = apperror.New(
		apperror.CodeValidation,
		"format must be csv or xlsx",
		http.StatusBadRequest,
	)
	ErrRangeRequired = apperror.New(
		apperror.CodeValidation,
		"start_date and end_date are required",
		http.StatusBadRequest,
	)
)
