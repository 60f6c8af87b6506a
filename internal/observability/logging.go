// Package observability provides logger construction for the dice tools.
package observability

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cory-johannsen/dice/internal/config"
)

// ServiceName is attached to every entry written by loggers from NewLogger.
const ServiceName = "dice"

// NewLogger creates a structured logger from the given logging configuration.
// JSON output uses zap's production settings; console output uses the
// development settings.
//
// Precondition: cfg.Level must be one of "debug", "info", "warn", "error".
// Precondition: cfg.Format must be "json" or "console".
// Postcondition: Returns a configured zap.Logger or a non-nil error.
func NewLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
	}

	var zapCfg zap.Config
	switch cfg.Format {
	case "json":
		zapCfg = zap.NewProductionConfig()
	case "console":
		zapCfg = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapCfg.InitialFields = map[string]interface{}{"service": ServiceName}
	// Every roll shares the message "dice roll"; sampling would drop audit entries.
	zapCfg.Sampling = nil

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger, nil
}

// RollLogger returns the logger handed to dice.NewLoggedRoller. When
// cfg.Rolls is false the per-roll debug entries are suppressed while the rest
// of base keeps its level.
func RollLogger(base *zap.Logger, cfg config.LoggingConfig) *zap.Logger {
	l := base.Named("dice")
	if !cfg.Rolls {
		l = l.WithOptions(zap.IncreaseLevel(zapcore.InfoLevel))
	}
	return l
}
