package logging

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls how Setup builds the global logger.
type Options struct {
	// Production selects JSON output; otherwise a console encoder is used.
	Production bool
	Level      string
	// File enables a rotating JSON log file alongside stdout.
	File string
}

// Setup builds a zap logger from opts, installs it as the global logger,
// and returns it so the caller can Sync on shutdown.
func Setup(opts Options) *zap.Logger {
	level := zap.NewAtomicLevelAt(ParseLevel(opts.Level))

	encoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	if opts.Production {
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	}

	cores := []zapcore.Core{zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), level)}
	if opts.File != "" {
		rotating := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(rotating),
			level,
		))
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	zap.ReplaceGlobals(logger)
	return logger
}

// ParseLevel maps DEBUG, INFO, WARN, and ERROR (any case) to a zap level.
// Anything else is INFO.
func ParseLevel(s string) zapcore.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return zapcore.DebugLevel
	case "WARN", "WARNING":
		return zapcore.WarnLevel
	case "ERROR":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
