// Package logger provides a zap-backed implementation of the logging surface
// the relay's components consume. The logger is injected explicitly wherever
// it is needed; there is no process-wide instance.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger adapts a zap SugaredLogger to the apiclient.Logger surface.
type ZapLogger struct {
	sugar *zap.SugaredLogger
}

// New builds a ZapLogger writing JSON to stdout at the given level.
func New(level string) (*ZapLogger, error) {
	var lvl zapcore.Level
	switch level {
	case "debug":
		lvl = zapcore.DebugLevel
	case "info":
		lvl = zapcore.InfoLevel
	case "warn", "warning":
		lvl = zapcore.WarnLevel
	case "error":
		lvl = zapcore.ErrorLevel
	default:
		lvl = zapcore.InfoLevel
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.AddSync(zapcore.Lock(os.Stdout)),
		lvl,
	)

	z := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	return &ZapLogger{sugar: z.Sugar()}, nil
}

// Infof logs a formatted line at info level.
func (l *ZapLogger) Infof(format string, args ...any) {
	l.sugar.Infof(format, args...)
}

// Errorf logs a formatted line at error level.
func (l *ZapLogger) Errorf(format string, args ...any) {
	l.sugar.Errorf(format, args...)
}

// InfoObj logs msg with the given object as a structured field named key.
func (l *ZapLogger) InfoObj(msg, key string, obj any) {
	l.sugar.Desugar().Info(msg, zap.Any(key, obj))
}

// ErrorObj logs msg with the given object as a structured field named key.
func (l *ZapLogger) ErrorObj(msg, key string, obj any) {
	l.sugar.Desugar().Error(msg, zap.Any(key, obj))
}

// Sync flushes any buffered log entries.
func (l *ZapLogger) Sync() error {
	return l.sugar.Sync()
}
