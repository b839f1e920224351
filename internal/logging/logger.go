package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a JSON logger. "production" selects the production config,
// anything else the development one.
func New(appEnv string) (*zap.SugaredLogger, error) {
	var config zap.Config

	if appEnv == "production" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
	}
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.Encoding = "json"

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return logger.Sugar(), nil
}

// Must is New for command entry points, falling back to a production
// logger when the configured one cannot be built.
func Must(appEnv string) *zap.SugaredLogger {
	log, err := New(appEnv)
	if err != nil {
		fallback, _ := zap.NewProduction()
		return fallback.Sugar()
	}
	return log
}
