package payroll

import (
	"spincraft-tracker/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	rdb ...*redis.Client,
) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	payroll := r.Group("/payroll")
	{
		payroll.GET("/calculate",
			middleware.RateLimitByUser(2, 10),
			middleware.RBACAuthorize(rbacService, "payroll", "read"),
			handler.Calculate,
		)

		payroll.GET("/snapshots",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "payroll", "read"),
			handler.ListSnapshots,
		)

		if redisClient != nil {
			payroll.POST("/snapshots",
				middleware.RateLimitByUser(1, 3),
				middleware.RBACAuthorize(rbacService, "payroll", "write"),
				middleware.Idempotency(redisClient),
				handler.SaveSnapshots,
			)
		} else {
			payroll.POST("/snapshots",
				middleware.RateLimitByUser(1, 3),
				middleware.RBACAuthorize(rbacService, "payroll", "write"),
				handler.SaveSnapshots,
			)
		}

		payroll.POST("/snapshots/:id/mark-paid",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "payroll", "write"),
			handler.MarkPaid,
		)

		payroll.GET("/snapshots/:id/slip",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, "payroll", "read"),
			handler.DownloadSlip,
		)
	}
}
