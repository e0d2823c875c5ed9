package log

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var level zap.AtomicLevel

func init() {
	level = zap.NewAtomicLevelAt(zapcore.InfoLevel)

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	logger := zap.New(zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.Lock(os.Stdout),
		level,
	))

	zap.ReplaceGlobals(logger)
}

// Debug logs a debug message with optional key/value pairs.
func Debug(msg string, args ...interface{}) {
	zap.S().Debugw(msg, args...)
}

// Info logs an info message with optional key/value pairs.
func Info(msg string, args ...interface{}) {
	zap.S().Infow(msg, args...)
}

// Warn logs a warning message with optional key/value pairs.
func Warn(msg string, args ...interface{}) {
	zap.S().Warnw(msg, args...)
}

// Error logs an error message with optional key/value pairs.
func Error(msg string, args ...interface{}) {
	zap.S().Errorw(msg, args...)
}

// Fatal logs a fatal message and exits.
func Fatal(msg string, args ...interface{}) {
	zap.S().Fatalw(msg, args...)
}

// SetLevel sets the log level by name, which can be any of
// ["debug", "info", "warning", "error", "fatal"], case-insensitive.
func SetLevel(name string) error {
	switch strings.ToLower(name) {
	case "debug":
		level.SetLevel(zapcore.DebugLevel)
	case "info":
		level.SetLevel(zapcore.InfoLevel)
	case "warning", "warn":
		level.SetLevel(zapcore.WarnLevel)
	case "error":
		level.SetLevel(zapcore.ErrorLevel)
	case "fatal":
		level.SetLevel(zapcore.FatalLevel)
	default:
		return fmt.Errorf("invalid log level string: %v", name)
	}

	return nil
}
