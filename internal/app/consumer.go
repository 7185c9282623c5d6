package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"spincraft-tracker/internal/auditlog"
	"spincraft-tracker/internal/config"
	"spincraft-tracker/internal/employee"
	"spincraft-tracker/internal/events"
	"spincraft-tracker/internal/messaging/kafka"
	"spincraft-tracker/internal/messaging/kafka/consumer"
	"spincraft-tracker/internal/payroll"
	"spincraft-tracker/internal/shared/connection"
	"spincraft-tracker/internal/worklog"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const adminActionGroupID = "spincraft-payroll-refresh"

// RunConsumer refreshes pending salary snapshots from admin action events until SIGINT or
// SIGTERM.
func RunConsumer(cfg config.Config) error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.PostgresDSN(), cfg.ConnectRetries, logger)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	policy, err := payroll.NewPolicy(cfg.PayrollPayableStatuses, cfg.PayrollOvertimeCap)
	if err != nil {
		return err
	}

	auditService := auditlog.NewService(sqlDB, auditlog.NewRepository(gormDB), kafka.NewOutboxRepository(sqlDB), cfg.AuditListLimit, logger)
	payrollService := payroll.NewService(
		sqlDB,
		payroll.NewRepository(gormDB),
		worklog.NewRepository(gormDB),
		employee.NewRepository(gormDB),
		auditService,
		policy,
		logger,
	)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.KafkaBroker},
		Topic:          events.AdminActionTopic,
		GroupID:        adminActionGroupID,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeAdminActions(ctx, reader, payrollService, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
