package report

import (
	"spincraft-tracker/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	reports := r.Group("/reports")
	{
		reports.GET("/dashboard",
			middleware.RateLimitByUser(5, 10),
			middleware.RBACAuthorize(rbacService, "report", "read"),
			handler.Dashboard,
		)

		reports.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "report", "read"),
			handler.Report,
		)

		reports.GET("/export",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, "report", "read"),
			handler.Export,
		)
	}
}
