package apperror

import (
	"encoding/json"
	"net/http"
	"reflect"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type workLogInput struct {
	EmployeeID string   `json:"employee_id" validate:"required"`
	Status     string   `json:"status" validate:"required,oneof=present absent holiday overtime"`
	TotalHours *float64 `json:"total_hours" validate:"required,gte=0"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(fieldName)
	return v
}

func TestMapValidationError(t *testing.T) {
	hours := -1.0
	err := newValidator().Struct(workLogInput{Status: "sick", TotalHours: &hours})
	require.Error(t, err)

	mapped := MapValidationError(err)
	httpErr := ToHTTP(mapped)

	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, CodeValidation, httpErr.Code)
	assert.Equal(t, "Employee Id is required", httpErr.Message)
	assert.Equal(t, map[string]string{
		"employee_id": "required",
		"status":      "must be one of: present absent holiday overtime",
		"total_hours": "must be at least 0",
	}, httpErr.Details)
}

func TestMapValidationError_NotAValidatorError(t *testing.T) {
	var v map[string]any
	syntaxErr := json.Unmarshal([]byte(`{"name":`), &v)

	httpErr := ToHTTP(MapValidationError(syntaxErr))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "Invalid input", httpErr.Message)
	assert.Nil(t, httpErr.Details)
}

func TestFieldName(t *testing.T) {
	type q struct {
		StartDate string `form:"start_date"`
		Name      string `json:"name,omitempty"`
		Hidden    string `json:"-"`
		Plain     string
	}
	typ := func(i int) string { return fieldName(reflectField(q{}, i)) }
	assert.Equal(t, "start_date", typ(0))
	assert.Equal(t, "name", typ(1))
	assert.Equal(t, "", typ(2))
	assert.Equal(t, "Plain", typ(3))
}

func reflectField(v any, i int) reflect.StructField {
	return reflect.TypeOf(v).Field(i)
}
