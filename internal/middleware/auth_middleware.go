package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"spincraft-tracker/internal/session"
	"spincraft-tracker/internal/shared/apperror"
	"spincraft-tracker/internal/shared/contextutil"
	"spincraft-tracker/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const AccessTokenCookie = "access_token"

// AuthMiddleware validates the HS256 session token from the Authorization header or the
// access_token cookie and places the session on both the gin and the request context.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, _ := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		tokenString = strings.TrimSpace(tokenString)

		if tokenString == "" {
			if cookie, err := c.Cookie(AccessTokenCookie); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Token not found", nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(secret), nil
		})

		if err != nil || !token.Valid {
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token expired"
			}
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, msg, nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Invalid token claims", nil)
			c.Abort()
			return
		}

		adminID, ok := claims["admin_id"].(string)
		if !ok || adminID == "" {
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Admin ID not found in token", nil)
			c.Abort()
			return
		}

		sess := session.Session{AdminID: adminID}
		sess.Username, _ = claims["username"].(string)
		sess.Name, _ = claims["name"].(string)
		sess.Role, _ = claims["role"].(string)
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			sess.ExpiresAt = exp.Time
		}

		c.Set("admin_id", sess.AdminID)
		c.Set("role", sess.Role)
		c.Set("session", sess)

		ctx := session.WithSession(c.Request.Context(), sess)
		ctx = contextutil.WithAdminID(ctx, sess.AdminID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
