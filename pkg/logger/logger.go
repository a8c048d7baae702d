// Package logger builds the service logger: an ectologger front backed by a
// zap core so output is structured JSON in production and console-friendly
// during development.
package logger

import (
	"fmt"
	"strings"

	"github.com/Gobusters/ectologger"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config controls log output.
type Config struct {
	Level  string
	Pretty bool
}

// New builds an ectologger that writes through zap. The returned flush
// function should be deferred in main.
func New(cfg Config) (ectologger.Logger, func(), error) {
	zapCfg := zap.NewProductionConfig()
	if cfg.Pretty {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	zl, err := zapCfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build logger: %w", err)
	}

	logger := ectologger.NewEctoLogger(sink(zl))
	flush := func() { _ = zl.Sync() }
	return logger, flush, nil
}

func sink(zl *zap.Logger) func(ectologger.EctoLogMessage) {
	return func(msg ectologger.EctoLogMessage) {
		fields := []zap.Field{zap.Any("entry", msg)}
		switch strings.ToLower(fmt.Sprint(msg.Level)) {
		case "debug":
			zl.Debug(msg.Message, fields...)
		case "warn", "warning":
			zl.Warn(msg.Message, fields...)
		case "error", "fatal", "panic":
			zl.Error(msg.Message, fields...)
		default:
			zl.Info(msg.Message, fields...)
		}
	}
}
