package auditlog

import (
	"spincraft-tracker/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts read-only endpoints. There is no route that edits or removes entries.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	logs := r.Group("/audit-logs")
	{
		logs.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "audit", "read"),
			handler.List,
		)
	}
}
