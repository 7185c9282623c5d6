package apperror

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// formatFieldName turns total_hours into Total Hours.
func formatFieldName(s string) string {
	return titleCaser.String(strings.ReplaceAll(s, "_", " "))
}

// FieldErrors maps a json field name to the rule it broke.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s: %s", k, f[k])
	}
	return strings.Join(parts, "; ")
}

func (f FieldErrors) ErrorDetails() any {
	return map[string]string(f)
}

func describeRule(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "uuid", "uuid4":
		return "must be a uuid"
	default:
		return "invalid"
	}
}

// MapValidationError turns a gin binding error into a VALIDATION_ERROR. The message names
// the first failing field; every failing field is listed in the details.
func MapValidationError(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return Wrap(err, CodeValidation, "Invalid input", ErrInvalidInput.HTTPStatus)
	}

	fields := make(FieldErrors, len(errs))
	for _, fe := range errs {
		// Field() already carries the json or form name, see Init.
		fields[fe.Field()] = describeRule(fe)
	}

	first := errs[0]
	base := InvalidField(formatFieldName(first.Field()))
	if first.Tag() == "required" {
		base = RequiredField(formatFieldName(first.Field()))
	}
	base.Err = fields
	return base
}
