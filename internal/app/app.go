package app

import (
	"net/http"

	"spincraft-tracker/internal/auditlog"
	"spincraft-tracker/internal/config"
	"spincraft-tracker/internal/employee"
	"spincraft-tracker/internal/messaging/kafka"
	"spincraft-tracker/internal/middleware"
	"spincraft-tracker/internal/observability"
	"spincraft-tracker/internal/payroll"
	"spincraft-tracker/internal/shared/connection"
	"spincraft-tracker/internal/worklog"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BuildApp connects the record store and Redis, migrates the schema and registers every
// route on router. The returned cleanup closes the connections.
func BuildApp(router *gin.Engine, cfg config.Config) (func(), error) {
	logger := zap.L().Named("app")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.PostgresDSN(), cfg.ConnectRetries, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("database connection established")

	if err := migrate(gormDB); err != nil {
		return nil, err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}

	redisClient, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, cfg.ConnectRetries, logger)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	logger.Info("redis connection established")

	observability.RegisterMetrics()
	router.Use(middleware.RequestID(), middleware.AccessLog(zap.L()), middleware.Metrics())
	router.GET("/metrics", observability.MetricsHandler())
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if err := registerModules(router, cfg, sqlDB, gormDB, redisClient, logger); err != nil {
		_ = redisClient.Close()
		_ = sqlDB.Close()
		return nil, err
	}

	cleanup := func() {
		_ = redisClient.Close()
		_ = sqlDB.Close()
	}
	return cleanup, nil
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&employee.Employee{},
		&worklog.WorkLog{},
		&auditlog.AdminLog{},
		&payroll.SalaryCalculation{},
		&kafka.OutboxRecord{},
	)
}
