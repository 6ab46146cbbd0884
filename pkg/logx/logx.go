package logx

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level controls which messages get emitted
type Level = zapcore.Level

const (
	LevelDebug = zapcore.DebugLevel
	LevelInfo  = zapcore.InfoLevel
	LevelWarn  = zapcore.WarnLevel
	LevelError = zapcore.ErrorLevel
)

var (
	mu    sync.Mutex
	level = zap.NewAtomicLevelAt(LevelInfo)
	sugar = newSugar()
)

func newSugar() *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	cfg.Level = level
	cfg.DisableStacktrace = true
	z, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		z = zap.NewNop()
	}
	return z.Sugar()
}

// SetLevel changes the global log level
func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	level.SetLevel(l)
}

// ParseLevel maps a level name ("debug", "info", "warn", "error") to a Level,
// falling back to info for unknown names
func ParseLevel(name string) Level {
	l, err := zapcore.ParseLevel(name)
	if err != nil {
		return LevelInfo
	}
	return l
}

func Debug(args ...any)                 { sugar.Debug(args...) }
func Debugf(format string, args ...any) { sugar.Debugf(format, args...) }
func Info(args ...any)                  { sugar.Info(args...) }
func Infof(format string, args ...any)  { sugar.Infof(format, args...) }
func Warn(args ...any)                  { sugar.Warn(args...) }
func Warnf(format string, args ...any)  { sugar.Warnf(format, args...) }
func Error(args ...any)                 { sugar.Error(args...) }
func Errorf(format string, args ...any) { sugar.Errorf(format, args...) }
func Fatalf(format string, args ...any) { sugar.Fatalf(format, args...) }

// Sync flushes buffered log entries; call on shutdown
func Sync() error {
	return sugar.Sync()
}
