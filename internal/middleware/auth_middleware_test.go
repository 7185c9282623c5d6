package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"spincraft-tracker/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func authRouter(t *testing.T, captured *session.Session) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", AuthMiddleware(testSecret), func(c *gin.Context) {
		s, ok := session.FromContext(c.Request.Context())
		require.True(t, ok)
		*captured = s
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	valid := jwt.MapClaims{
		"admin_id": "admin-1",
		"username": "admin",
		"name":     "System Administrator",
		"role":     "admin",
		"exp":      time.Now().Add(time.Hour).Unix(),
	}

	t.Run("bearer header", func(t *testing.T) {
		var got session.Session
		r := authRouter(t, &got)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, valid, testSecret))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "admin-1", got.AdminID)
		assert.Equal(t, "admin", got.Role)
		assert.False(t, got.ExpiresAt.IsZero())
	})

	t.Run("cookie", func(t *testing.T) {
		var got session.Session
		r := authRouter(t, &got)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: signToken(t, valid, testSecret)})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "System Administrator", got.Name)
	})

	t.Run("missing token", func(t *testing.T) {
		var got session.Session
		r := authRouter(t, &got)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("wrong secret", func(t *testing.T) {
		var got session.Session
		r := authRouter(t, &got)
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, valid, "other"))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid token")
	})

	t.Run("expired", func(t *testing.T) {
		var got session.Session
		r := authRouter(t, &got)
		expired := jwt.MapClaims{"admin_id": "admin-1", "exp": time.Now().Add(-time.Minute).Unix()}
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, expired, testSecret))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Token expired")
	})

	t.Run("missing admin id", func(t *testing.T) {
		var got session.Session
		r := authRouter(t, &got)
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, jwt.MapClaims{"role": "admin"}, testSecret))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
