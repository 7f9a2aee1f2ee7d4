package logger

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/jlpt-quiz-bot/internal/config"
)

// New builds the application logger. Production gets JSON output, every other
// environment the development console encoder.
func New(cfg *config.Config) (*zap.Logger, error) {
	zcfg := zap.NewDevelopmentConfig()
	if cfg.Env == "production" {
		zcfg = zap.NewProductionConfig()
	}

	if cfg.LogLevel != "" {
		level, err := zap.ParseAtomicLevel(cfg.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		zcfg.Level = level
	}

	return zcfg.Build(zap.Fields(zap.String("env", cfg.Env)))
}
