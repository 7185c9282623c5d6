package bootstrap

import (
	"strings"

	"go.uber.org/zap"
)

// NewLogger returns a JSON production logger for APP_ENV=production and a console
// development logger otherwise. The logger is also installed as zap's global.
func NewLogger(appEnv string) (*zap.Logger, error) {
	build := zap.NewDevelopment
	if strings.EqualFold(appEnv, "production") {
		build = zap.NewProduction
	}
	logger, err := build()
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)
	return logger, nil
}
