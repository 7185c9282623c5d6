package auditlog

import (
	"net/http"

	"spincraft-tracker/internal/shared/apperror"
	"spincraft-tracker/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("auditlog.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auditlog.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) List(c *gin.Context) {
	var filter ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.logger.Warn("http list audit logs validation failed", zap.Error(err))
		response.BindError(c, err)
		return
	}

	resp, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		h.logger.Warn("audit log request failed",
			zap.Int("status", httpErr.Status),
			zap.String("code", httpErr.Code),
		)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
