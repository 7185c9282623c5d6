package employee_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"spincraft-tracker/internal/employee"
	employeeerrors "spincraft-tracker/internal/employee/errors"
	employeeMock "spincraft-tracker/internal/employee/mock"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func withAdmin(adminID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("admin_id", adminID)
		c.Next()
	}
}

type envelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Meta  map[string]any  `json:"meta"`
	Error map[string]any  `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestEmployeeHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := employeeMock.NewMockService(ctrl)
		h := employee.NewHandler(svc)

		svc.EXPECT().Create(gomock.Any(), "admin-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				assert.Equal(t, "Rina", req.Name)
				assert.Equal(t, 50.0, *req.SalaryPerHour)
				return employee.EmployeeResponse{ID: uuid.NewString(), Name: req.Name, IsActive: true}, nil
			})

		r := setupRouter()
		r.POST("/employees", withAdmin("admin-1"), h.Create)

		body := `{"name":"Rina","gender":"female","joining_date":"2024-01-15","salary_per_hour":50}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.True(t, decode(t, w).Ok)
	})

	t.Run("binding failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		h := employee.NewHandler(employeeMock.NewMockService(ctrl))

		r := setupRouter()
		r.POST("/employees", withAdmin("admin-1"), h.Create)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(`{"name":"Rina","gender":"other"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "VALIDATION_ERROR", decode(t, w).Error["code"])
	})
}

func TestEmployeeHandler_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := employeeMock.NewMockService(ctrl)
	h := employee.NewHandler(svc)

	svc.EXPECT().GetAll(gomock.Any(), true).Return([]employee.EmployeeResponse{
		{ID: "3", Name: "Citra", SalaryPerHour: 30},
		{ID: "1", Name: "andi", SalaryPerHour: 60},
		{ID: "2", Name: "Budi", SalaryPerHour: 45},
	}, nil)

	r := setupRouter()
	r.GET("/employees", h.GetAll)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees?include_inactive=true&sort_by=salary_per_hour&sort_dir=desc&page=1&page_size=2", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w)
	var items []employee.EmployeeResponse
	require.NoError(t, json.Unmarshal(env.Data, &items))
	require.Len(t, items, 2)
	assert.Equal(t, "andi", items[0].Name)
	assert.Equal(t, "Budi", items[1].Name)
	assert.EqualValues(t, 3, env.Meta["total"])
	assert.EqualValues(t, 2, env.Meta["totalPages"])
}

func TestEmployeeHandler_GetByIDNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := employeeMock.NewMockService(ctrl)
	h := employee.NewHandler(svc)

	id := uuid.NewString()
	svc.EXPECT().GetByID(gomock.Any(), id).Return(employee.EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound)

	r := setupRouter()
	r.GET("/employees/:id", h.GetByID)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees/"+id, nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", decode(t, w).Error["code"])
}

func TestEmployeeHandler_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := employeeMock.NewMockService(ctrl)
	h := employee.NewHandler(svc)

	id := uuid.NewString()
	svc.EXPECT().Deactivate(gomock.Any(), "admin-1", id).Return(nil)

	r := setupRouter()
	r.DELETE("/employees/:id", withAdmin("admin-1"), h.Delete)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/employees/"+id, nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"deactivated":true`)
}

func TestEmployeeHandler_GetAllRejectsUnknownSort(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := employeeMock.NewMockService(ctrl)
	h := employee.NewHandler(svc)

	r := setupRouter()
	r.GET("/employees", h.GetAll)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees?sort_by=gender", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", decode(t, w).Error["code"])
}
