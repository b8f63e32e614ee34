package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu    sync.RWMutex
	sugar *zap.SugaredLogger
)

func init() {
	Init(os.Getenv("LOG_MODE"))
}

// Init membangun ulang logger global. Mode "production" memakai encoder JSON,
// selain itu encoder console untuk development.
func Init(mode string) {
	var cfg zap.Config
	if mode == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.OutputPaths = []string{"stdout"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	l, err := cfg.Build(zap.AddCaller(), zap.AddCallerSkip(1))
	if err != nil {
		l = zap.NewNop()
	}
	Replace(l)
}

// Replace swaps the underlying zap logger (tests use zap.NewNop or an observer core).
func Replace(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	if sugar != nil {
		_ = sugar.Sync()
	}
	sugar = l.Sugar()
	zap.ReplaceGlobals(l)
}

func current() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return sugar
}

// L returns the structured logger for callers that want typed fields.
func L() *zap.Logger {
	return current().Desugar()
}

func Info(msg string, v ...interface{}) {
	args := compact(v)
	if len(args) == 0 {
		current().Info(msg)
		return
	}
	current().Infof(msg, args...)
}

func Warn(msg string, v ...interface{}) {
	args := compact(v)
	if len(args) == 0 {
		current().Warn(msg)
		return
	}
	current().Warnf(msg, args...)
}

func Error(msg string, err error, v ...interface{}) {
	l := current()
	if err != nil {
		l = l.With(zap.Error(err))
	}
	args := compact(v)
	if len(args) == 0 {
		l.Error(msg)
		return
	}
	l.Errorf(msg, args...)
}

// Sync flushes buffered entries, call it before the process exits.
func Sync() {
	_ = current().Sync()
}

// compact drops the trailing nil placeholder call sites pass after err. Other nil
// values are real format arguments and stay in place.
func compact(v []interface{}) []interface{} {
	if n := len(v); n > 0 && v[n-1] == nil {
		return v[:n-1]
	}
	return v
}
