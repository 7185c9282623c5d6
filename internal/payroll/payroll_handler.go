package payroll

import (
	"fmt"
	"net/http"

	"spincraft-tracker/internal/middleware"
	"spincraft-tracker/internal/shared/apperror"
	"spincraft-tracker/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	rdb     *redis.Client
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("payroll.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.handler")
	}
	return &Handler{service: service, logger: l}
}

// NewHandlerWithRedis enables idempotent replay of snapshot saves.
func NewHandlerWithRedis(service Service, rdb *redis.Client, logger ...*zap.Logger) *Handler {
	h := NewHandler(service, logger...)
	h.rdb = rdb
	return h
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("payroll request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Calculate(c *gin.Context) {
	var req CalculateRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BindError(c, err)
		return
	}

	resp, err := h.service.Calculate(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) SaveSnapshots(c *gin.Context) {
	actorID := c.GetString("admin_id")

	var req CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.CompleteIdempotency(c, h.rdb, nil, false)
		response.BindError(c, err)
		return
	}

	resp, err := h.service.SaveSnapshots(c.Request.Context(), actorID, req)
	if err != nil {
		middleware.CompleteIdempotency(c, h.rdb, nil, false)
		h.writeServiceError(c, err)
		return
	}

	middleware.CompleteIdempotency(c, h.rdb, resp, true)
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) ListSnapshots(c *gin.Context) {
	var filter SnapshotFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BindError(c, err)
		return
	}

	resp, err := h.service.ListSnapshots(c.Request.Context(), filter)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) MarkPaid(c *gin.Context) {
	resp, err := h.service.MarkPaid(c.Request.Context(), c.GetString("admin_id"), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) DownloadSlip(c *gin.Context) {
	slip, err := h.service.SalarySlip(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", slip.FileName))
	c.Data(http.StatusOK, "application/pdf", slip.Content)
}
