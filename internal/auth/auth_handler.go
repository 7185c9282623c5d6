package auth

import (
	"net/http"
	"strings"
	"time"

	"spincraft-tracker/internal/middleware"
	"spincraft-tracker/internal/shared/apperror"
	"spincraft-tracker/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service      Service
	secureCookie bool
	logger       *zap.Logger
}

func NewHandler(s Service, secureCookie bool, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("auth.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.handler")
	}
	return &Handler{service: s, secureCookie: secureCookie, logger: l}
}

// isWebClient treats an explicit X-Client-Type of WEB, or a browser user agent, as a
// cookie-based client.
func isWebClient(c *gin.Context) bool {
	if ct := strings.TrimSpace(c.GetHeader("X-Client-Type")); ct != "" {
		return strings.EqualFold(ct, "WEB")
	}
	return strings.Contains(c.GetHeader("User-Agent"), "Mozilla/")
}

func (h *Handler) setTokenCookie(c *gin.Context, value string, maxAge int) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	if isWebClient(c) {
		maxAge := int(time.Until(resp.ExpiresAt).Seconds())
		if maxAge < 1 {
			maxAge = 1
		}
		h.setTokenCookie(c, resp.AccessToken, maxAge)
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// Logout clears the cookie. Tokens are stateless and stay valid until they expire.
func (h *Handler) Logout(c *gin.Context) {
	h.setTokenCookie(c, "", -1)
	response.Success(c, http.StatusOK, gin.H{"logged_out": true}, nil)
}

func (h *Handler) Me(c *gin.Context) {
	adminID := c.GetString("admin_id")
	if adminID == "" {
		response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Unauthorized", nil)
		return
	}

	resp, err := h.service.Me(c.Request.Context(), adminID)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		h.logger.Warn("me lookup failed", zap.String("admin_id", adminID), zap.String("code", httpErr.Code))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
