package auth_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"spincraft-tracker/internal/auth"
	autherrors "spincraft-tracker/internal/auth/errors"
	authMock "spincraft-tracker/internal/auth/mock"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func setupAuthRouter(t *testing.T) (*gin.Engine, *authMock.MockService) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	svc := authMock.NewMockService(ctrl)
	h := auth.NewHandler(svc, false)

	r := gin.New()
	r.POST("/login", h.Login)
	r.POST("/logout", h.Logout)
	r.GET("/me", func(c *gin.Context) {
		if id := c.GetHeader("X-Test-Admin"); id != "" {
			c.Set("admin_id", id)
		}
	}, h.Me)
	return r, svc
}

func loginRequest(t *testing.T, clientType string) *http.Request {
	body, err := json.Marshal(auth.LoginRequest{Username: "admin", Password: "s3cret!"})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Client-Type", clientType)
	return req
}

func TestHandler_Login(t *testing.T) {
	success := auth.LoginResponse{
		Admin:       auth.AdminResponse{ID: "admin-1", Username: "admin"},
		AccessToken: "signed-token",
		ExpiresAt:   time.Now().Add(time.Hour),
	}

	t.Run("web client gets cookie", func(t *testing.T) {
		r, svc := setupAuthRouter(t)
		svc.EXPECT().Login(gomock.Any(), "admin", "s3cret!").Return(success, nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, loginRequest(t, "WEB"))

		assert.Equal(t, http.StatusOK, w.Code)
		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "access_token", cookies[0].Name)
		assert.Equal(t, "signed-token", cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)
	})

	t.Run("api client gets token in body only", func(t *testing.T) {
		r, svc := setupAuthRouter(t)
		svc.EXPECT().Login(gomock.Any(), "admin", "s3cret!").Return(success, nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, loginRequest(t, "MOBILE"))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Result().Cookies())
		assert.Contains(t, w.Body.String(), `"access_token":"signed-token"`)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		r, svc := setupAuthRouter(t)
		svc.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(auth.LoginResponse{}, autherrors.ErrInvalidCredentials)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, loginRequest(t, "WEB"))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Empty(t, w.Result().Cookies())
	})

	t.Run("missing password", func(t *testing.T) {
		r, _ := setupAuthRouter(t)
		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(`{"username":"admin"}`))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_Logout(t *testing.T) {
	r, _ := setupAuthRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/logout", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "", cookies[0].Value)
	assert.True(t, cookies[0].MaxAge < 0)
}

func TestHandler_Me(t *testing.T) {
	t.Run("unauthenticated", func(t *testing.T) {
		r, _ := setupAuthRouter(t)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("returns admin", func(t *testing.T) {
		r, svc := setupAuthRouter(t)
		svc.EXPECT().Me(gomock.Any(), "admin-1").Return(auth.AdminResponse{ID: "admin-1", Name: "System Administrator"}, nil)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("X-Test-Admin", "admin-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "System Administrator")
	})
}
