package logging

import (
	"os"
	"sort"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Fields map[string]interface{}

var (
	mu     sync.RWMutex
	logger = newLogger()
)

func newLogger() *zap.Logger {
	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "ts"
	enc.MessageKey = "msg"
	enc.LevelKey = "level"
	enc.EncodeTime = zapcore.RFC3339TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.Lock(os.Stderr), zapcore.InfoLevel)
	return zap.New(core)
}

// SetLogger swaps the process logger. Tests use it with zaptest/observer
// or zap.NewNop to keep output quiet.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	mu.Lock()
	logger = l
	mu.Unlock()
}

func current() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

func toZap(fields Fields) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		out = append(out, zap.Any(k, fields[k]))
	}
	return out
}

// Info logs an informational message with optional fields.
func Info(msg string, fields Fields) {
	current().Info(msg, toZap(fields)...)
}

// Warn logs a recoverable problem.
func Warn(msg string, fields Fields) {
	current().Warn(msg, toZap(fields)...)
}

// Error logs an error message and includes the error text in the fields.
func Error(msg string, err error, fields Fields) {
	zf := toZap(fields)
	if err != nil {
		zf = append(zf, zap.Error(err))
	}
	current().Error(msg, zf...)
}

// Fatal logs a fatal error and exits the process.
func Fatal(msg string, err error, fields Fields) {
	zf := toZap(fields)
	if err != nil {
		zf = append(zf, zap.Error(err))
	}
	l := current()
	l.Error(msg, zf...)
	_ = l.Sync()
	os.Exit(1)
}

// Sync flushes buffered entries; call before the process exits.
func Sync() {
	_ = current().Sync()
}
