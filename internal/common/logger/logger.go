package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap with an action-first API: every entry carries the service
// name and a machine-readable action tag.
type Logger struct {
	zl *zap.Logger
}

func New(service string) *Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "timestamp"
	encCfg.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	encCfg.MessageKey = "action"

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encCfg),
		zapcore.Lock(os.Stdout),
		zapcore.DebugLevel,
	)

	host, _ := os.Hostname()
	zl := zap.New(core).With(
		zap.String("service", service),
		zap.String("hostname", host),
	)
	return &Logger{zl: zl}
}

func (l *Logger) Info(action string, fields map[string]any) {
	l.zl.Info(action, toZap(fields)...)
}

func (l *Logger) Debug(action string, fields map[string]any) {
	l.zl.Debug(action, toZap(fields)...)
}

func (l *Logger) Error(action string, err error, fields map[string]any) {
	zf := toZap(fields)
	if err != nil {
		zf = append(zf, zap.Error(err))
	}
	l.zl.Error(action, zf...)
}

func (l *Logger) Sync() { _ = l.zl.Sync() }

func toZap(fields map[string]any) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		out = append(out, zap.Any(k, v))
	}
	return out
}
