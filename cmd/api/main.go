package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"spincraft-tracker/internal/app"
	"spincraft-tracker/internal/bootstrap"
	"spincraft-tracker/internal/config"
	"spincraft-tracker/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, cfgErr := config.Load()

	logger, err := bootstrap.NewLogger(cfg.AppEnv)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if cfgErr != nil {
		logger.Fatal("load config failed", zap.Error(cfgErr))
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	apperror.Init()
	r := gin.New()
	r.Use(gin.Recovery())

	cleanup, err := app.BuildApp(r, cfg)
	if err != nil {
		logger.Fatal("build app failed", zap.Error(err))
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = bootstrap.RunHTTPServer(ctx, r, bootstrap.ServerConfig{
		Addr:         cfg.HTTPAddress(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}, bootstrap.NewStdoutAuditLogger())
	if err != nil {
		logger.Error("http server stopped", zap.Error(err))
	}
}
