// Package logging owns the process-wide zap logger.
package logging

import (
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger      atomic.Pointer[zap.SugaredLogger]
	defaultOnce sync.Once
)

// Init builds the global logger. development switches to the colored console
// encoder with debug output; otherwise level applies ("debug", "info", ...).
func Init(level string, development bool) error {
	var config zap.Config

	if development {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		config.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	} else {
		config = zap.NewProductionConfig()
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			lvl = zapcore.InfoLevel
		}
		config.Level = zap.NewAtomicLevelAt(lvl)
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	config.DisableStacktrace = !development

	l, err := config.Build()
	if err != nil {
		return err
	}

	zap.ReplaceGlobals(l)
	zap.RedirectStdLog(l)
	logger.Store(l.Sugar())
	return nil
}

// L returns the global sugared logger, initializing a production logger on first use
func L() *zap.SugaredLogger {
	if l := logger.Load(); l != nil {
		return l
	}
	defaultOnce.Do(func() {
		if logger.Load() != nil {
			return
		}
		if err := Init("info", false); err != nil {
			logger.Store(zap.NewNop().Sugar())
		}
	})
	return logger.Load()
}

// With creates a logger with the given structured fields
func With(fields ...interface{}) *zap.SugaredLogger {
	return L().With(fields...)
}

// Sync flushes buffered entries
func Sync() {
	if l := logger.Load(); l != nil {
		_ = l.Sync()
	}
}

// LogDuration logs the duration of an operation
// Usage: defer LogDuration(log, "fallback", time.Now())
func LogDuration(log *zap.SugaredLogger, operation string, start time.Time) {
	duration := time.Since(start)
	log.With(
		"operation", operation,
		"duration_ms", duration.Milliseconds(),
	).Debugf("Completed %s in %v", operation, duration)
}
