package attendance

import (
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

// NewHandler takes the Redis client backing the idempotency middleware of SaveDay. A nil
// client disables result caching.
func NewHandler(service Service, rdb *redis.Client, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("attendance.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.handler")
	}
	return &Handler{service: service, rdb: rdb, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	if apperror.HasCode(err, apperror.CodeStoreError) {
		h.logger.Error("attendance store failure",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	h.logger.Warn("attendance request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) GetDay(c *gin.Context) {
	resp, err := h.service.GetDay(c.Request.Context(), c.Param("date"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) SaveDay(c *gin.Context) {
	date := c.Param("date")
	actorID := c.GetString("admin_id")

	var req SaveDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http save day validation failed", zap.Error(err))
		middleware.CompleteIdempotency(c, h.rdb, nil, false)
		response.BindError(c, err)
		return
	}

	resp, err := h.service.SaveDay(c.Request.Context(), actorID, date, req)
	if err != nil {
		middleware.CompleteIdempotency(c, h.rdb, nil, false)
		h.writeServiceError(c, err)
		return
	}

	middleware.CompleteIdempotency(c, h.rdb, resp, true)
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Calendar(c *gin.Context) {
	var query CalendarQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BindError(c, err)
		return
	}

	resp, err := h.service.Calendar(c.Request.Context(), query)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
