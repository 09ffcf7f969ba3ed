// Package logger builds the zap loggers used across the CLI. Loggers
// are assembled from plugins (zapcore cores) bound to stdout, stderr,
// or a rotated file, sharing a JSON encoder with capital levels and
// ISO8601 timestamps.
package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Plugin is a log output: an encoder bound to a destination and level.
type Plugin = zapcore.Core

// New creates a logger from a plugin, applying the default options
// before any caller-supplied ones.
func New(plugin zapcore.Core, options ...zap.Option) *zap.Logger {
	return zap.New(plugin, append(defaultOptions(), options...)...)
}

// NewPlugin creates a plugin writing to the given destination at the
// given level.
func NewPlugin(writer zapcore.WriteSyncer, enabler zapcore.LevelEnabler) Plugin {
	return zapcore.NewCore(defaultEncoder(), writer, enabler)
}

// NewStdoutPlugin creates a plugin writing to standard output.
func NewStdoutPlugin(enabler zapcore.LevelEnabler) Plugin {
	return NewPlugin(zapcore.Lock(zapcore.AddSync(os.Stdout)), enabler)
}

// NewStderrPlugin creates a plugin writing to standard error.
func NewStderrPlugin(enabler zapcore.LevelEnabler) Plugin {
	return NewPlugin(zapcore.Lock(zapcore.AddSync(os.Stderr)), enabler)
}

// NewFilePlugin creates a plugin writing to a rotated log file. The
// returned closer must be closed before process exit so buffered
// entries reach the disk; lumberjack does not expose a sync method.
func NewFilePlugin(filePath string, enabler zapcore.LevelEnabler) (Plugin, io.Closer) {
	writer := &lumberjack.Logger{
		Filename:  filePath,
		MaxSize:   200,
		LocalTime: true,
		Compress:  true,
	}
	return NewPlugin(zapcore.AddSync(writer), enabler), writer
}

func defaultEncoder() zapcore.Encoder {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return zapcore.NewJSONEncoder(encoderConfig)
}

func defaultOptions() []zap.Option {
	var stackTraceLevel zap.LevelEnablerFunc = func(level zapcore.Level) bool {
		return level >= zapcore.DPanicLevel
	}
	return []zap.Option{
		zap.AddCaller(),
		zap.AddStacktrace(stackTraceLevel),
	}
}

// ParseLevel converts a configured level name to a zap level,
// defaulting to info for unknown names.
func ParseLevel(name string) zapcore.Level {
	var level zapcore.Level
	if err := level.Set(name); err != nil {
		return zapcore.InfoLevel
	}
	return level
}
