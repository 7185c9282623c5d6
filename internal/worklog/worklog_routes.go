package worklog

import (
	"spincraft-tracker/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
) {
	logs := r.Group("/work-logs")
	{
		logs.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "worklog", "read"),
			handler.List,
		)

		logs.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "worklog", "read"),
			handler.GetByID,
		)

		logs.POST("",
			middleware.RateLimitByUser(2, 10),
			middleware.RBACAuthorize(rbacService, "worklog", "write"),
			handler.Create,
		)

		logs.PUT("/:id",
			middleware.RateLimitByUser(2, 10),
			middleware.RBACAuthorize(rbacService, "worklog", "write"),
			handler.Update,
		)

		logs.DELETE("/:id",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "worklog", "write"),
			handler.Delete,
		)
	}
}
