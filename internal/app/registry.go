package app

import (
	"database/sql"

	"spincraft-tracker/internal/attendance"
	"spincraft-tracker/internal/auditlog"
	"spincraft-tracker/internal/auth"
	"spincraft-tracker/internal/config"
	"spincraft-tracker/internal/employee"
	"spincraft-tracker/internal/messaging/kafka"
	"spincraft-tracker/internal/middleware"
	"spincraft-tracker/internal/payroll"
	"spincraft-tracker/internal/rbac"
	"spincraft-tracker/internal/rbac/infra"
	"spincraft-tracker/internal/report"
	"spincraft-tracker/internal/worklog"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	cfg config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) error {
	// --- Repositories ---
	auditRepo := auditlog.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	payrollRepo := payroll.NewRepository(gormDB)
	worklogRepo := worklog.NewRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rules, inherits := rbac.DefaultRules()
	rbacService, err := rbac.NewService(enforcer, rules, inherits, logger)
	if err != nil {
		return err
	}

	policy, err := payroll.NewPolicy(cfg.PayrollPayableStatuses, cfg.PayrollOvertimeCap)
	if err != nil {
		return err
	}

	// --- Services ---
	auditService := auditlog.NewService(db, auditRepo, outboxRepo, cfg.AuditListLimit, logger)
	verifier := auth.NewStaticVerifier(cfg.AdminID, cfg.AdminUsername, cfg.AdminName, cfg.AdminPasswordHash)
	authService := auth.NewService(verifier, auditService, cfg.JWTSecret, cfg.SessionTTL, logger)
	employeeService := employee.NewService(db, employeeRepo, auditService, rdb, logger)
	worklogService := worklog.NewService(db, worklogRepo, employeeRepo, auditService, logger)
	attendanceService := attendance.NewService(worklogRepo, employeeRepo, auditService, logger)
	payrollService := payroll.NewService(db, payrollRepo, worklogRepo, employeeRepo, auditService, policy, logger)
	reportService := report.NewService(worklogService, worklogRepo, employeeRepo, logger)

	// --- Handlers ---
	attendanceHandler := attendance.NewHandler(attendanceService, rdb, logger)
	auditHandler := auditlog.NewHandler(auditService, logger)
	authHandler := auth.NewHandler(authService, cfg.IsProduction(), logger)
	employeeHandler := employee.NewHandler(employeeService, logger)
	payrollHandler := payroll.NewHandlerWithRedis(payrollService, rdb, logger)
	rbacHandler := rbac.NewHandler(rbacService)
	reportHandler := report.NewHandler(reportService, logger)
	worklogHandler := worklog.NewHandler(worklogService, logger)

	// --- Routes Registration ---
	authMiddleware := middleware.AuthMiddleware(cfg.JWTSecret)

	api := router.Group("/api/v1")
	auth.RegisterRoutes(api, authHandler, authMiddleware)

	protected := api.Group("")
	protected.Use(authMiddleware, middleware.ContextLogger(logger))
	{
		attendance.RegisterRoutes(protected, attendanceHandler, rbacService, rdb)
		auditlog.RegisterRoutes(protected, auditHandler, rbacService)
		employee.RegisterRoutes(protected, employeeHandler, rbacService)
		payroll.RegisterRoutes(protected, payrollHandler, rbacService, rdb)
		rbac.RegisterRoutes(protected, rbacHandler)
		report.RegisterRoutes(protected, reportHandler, rbacService)
		worklog.RegisterRoutes(protected, worklogHandler, rbacService)
	}

	return nil
}
