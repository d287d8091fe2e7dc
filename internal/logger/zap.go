package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap's SugaredLogger.
type Logger struct {
	*zap.SugaredLogger
}

// Unknown level strings fall back to info.
const defaultZapLevel = zapcore.InfoLevel

func toZapLevel(levelStr string) zapcore.Level {
	switch levelStr {
	case DebugLevel:
		return zapcore.DebugLevel
	case InfoLevel:
		return zapcore.InfoLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	default:
		return defaultZapLevel
	}
}

func stdoutSink() zapcore.WriteSyncer {
	return zapcore.Lock(os.Stdout)
}

func newConsoleCore(level zapcore.Level, sink zapcore.WriteSyncer) zapcore.Core {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "ts"
	cfg.EncodeTime = zapcore.RFC3339TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.NameKey = "component"

	return zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), sink, zap.NewAtomicLevelAt(level))
}

func newZapLogger(levelStr string, sink zapcore.WriteSyncer) *Logger {
	return &Logger{
		SugaredLogger: zap.New(newConsoleCore(toZapLevel(levelStr), sink)).Sugar(),
	}
}

// New builds a standalone logger writing to w. Used by tests and tools that
// must not share the global instance.
func New(level string, w io.Writer) *Logger {
	return newZapLogger(level, zapcore.AddSync(w))
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{SugaredLogger: zap.NewNop().Sugar()}
}
