package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger defines the interface for logging messages.
type Logger interface {
	Error(msg string, err error)
	Warn(msg string)
	Info(msg string)
	Debug(msg string)
}

type zapLogger struct {
	logger *zap.Logger
}

var (
	loggerInstance *zapLogger
	once           sync.Once
)

// New creates a new singleton instance of the zap-backed logger.
// level is one of debug/info/warn/error; anything else means error.
func New(level string) Logger {
	once.Do(func() {
		cfg := zap.NewProductionConfig()
		switch level {
		case "debug":
			cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		case "info":
			cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
		case "warn":
			cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
		default:
			cfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
		}
		cfg.EncoderConfig.TimeKey = "ts"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		z, err := cfg.Build(zap.AddCallerSkip(1))
		if err != nil {
			// Fall back to a no-op logger rather than failing startup.
			z = zap.NewNop()
		}
		loggerInstance = &zapLogger{logger: z}
	})
	return loggerInstance
}

// Error logs an error message with the wrapped error, if any.
func (l *zapLogger) Error(msg string, err error) {
	if err != nil {
		l.logger.Error(msg, zap.Error(err))
		return
	}
	l.logger.Error(msg)
}

// Warn logs a warning message.
func (l *zapLogger) Warn(msg string) {
	l.logger.Warn(msg)
}

// Info logs an informational message.
func (l *zapLogger) Info(msg string) {
	l.logger.Info(msg)
}

// Debug logs a debug message.
func (l *zapLogger) Debug(msg string) {
	l.logger.Debug(msg)
}
