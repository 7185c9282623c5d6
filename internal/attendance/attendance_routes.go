package attendance

import (
	"spincraft-tracker/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	rdb *redis.Client,
) {
	attendance := r.Group("/attendance")
	{
		attendance.GET("/calendar",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "attendance", "read"),
			handler.Calendar,
		)

		attendance.GET("/days/:date",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "attendance", "read"),
			handler.GetDay,
		)

		saveDay := []gin.HandlerFunc{
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "attendance", "write"),
		}
		if rdb != nil {
			saveDay = append(saveDay, middleware.Idempotency(rdb))
		}
		saveDay = append(saveDay, handler.SaveDay)
		attendance.POST("/days/:date", saveDay...)
	}
}
