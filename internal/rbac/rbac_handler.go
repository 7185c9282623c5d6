package rbac

import (
	"net/http"
	"strings"

	"spincraft-tracker/internal/shared/apperror"
	"spincraft-tracker/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Enforce answers whether the current session may perform the action, so the dashboard
// can hide controls it would be refused.
func (h *Handler) Enforce(c *gin.Context) {
	var req EnforceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	allowed, err := h.service.Authorize(
		c.GetString("role"),
		strings.TrimSpace(req.Resource),
		strings.TrimSpace(req.Action),
	)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, apperror.CodeInternalError, err.Error(), nil)
		return
	}

	response.Success(c, http.StatusOK, EnforceResponse{Allowed: allowed}, nil)
}

func (h *Handler) Permissions(c *gin.Context) {
	perms, err := h.service.Permissions(c.GetString("role"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, apperror.CodeInternalError, err.Error(), nil)
		return
	}
	response.Success(c, http.StatusOK, perms, nil)
}
