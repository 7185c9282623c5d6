package main

import (
	"spincraft-tracker/internal/app"
	"spincraft-tracker/internal/bootstrap"
	"spincraft-tracker/internal/config"
	"spincraft-tracker/internal/shared/apperror"

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

	apperror.Init()

	if err := app.RunWorker(cfg); err != nil {
		logger.Fatal("run worker failed", zap.Error(err))
	}
}
