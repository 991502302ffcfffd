// Package log wraps a process-wide zap logger with context-carried fields.
package log

import (
	"context"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var _logger *zap.Logger
var defaultlogger *zap.Logger

type contextKey int

const (
	contextKeyFields contextKey = iota
)

func init() {
	Console()
}

func setLogger(l *zap.Logger) {
	defaultlogger = l
}
func resetLogger() {
	defaultlogger = _logger
}

func level(cfg *zap.Config, fallback zapcore.Level) {
	cfg.Level = zap.NewAtomicLevelAt(fallback)
	if lvl := os.Getenv("LOGLEVEL"); lvl != "" {
		if err := cfg.Level.UnmarshalText([]byte(lvl)); err != nil {
			cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		}
	}
}

func build(cfg zap.Config) {
	l, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	_logger = l
	defaultlogger = _logger
}

// Structured sets output to be JSON encoded
func Structured() {
	cfg := zap.NewProductionConfig()
	enc := zap.NewProductionEncoderConfig()
	enc.LevelKey = "severity"
	enc.TimeKey = "timestamp"
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	enc.StacktraceKey = ""
	enc.MessageKey = "message"
	cfg.EncoderConfig = enc
	cfg.DisableCaller = true
	cfg.DisableStacktrace = true
	level(&cfg, zap.InfoLevel)
	build(cfg)
}

func timeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("15:04:05.000"))
}

// Console sets output to be human-readable
func Console() {
	cfg := zap.NewDevelopmentConfig()
	enc := zap.NewDevelopmentEncoderConfig()
	enc.LevelKey = "severity"
	enc.TimeKey = "timestamp"
	enc.EncodeTime = timeEncoder
	enc.StacktraceKey = ""
	enc.MessageKey = "message"
	enc.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig = enc
	cfg.DisableCaller = true
	cfg.DisableStacktrace = true
	level(&cfg, zap.InfoLevel)
	build(cfg)
}

// Sync flushes buffered entries.
func Sync() {
	_ = defaultlogger.Sync()
}

// Logger returns a logger that will print fields previously added to the context
func Logger(ctx context.Context) *zap.Logger {
	flds := ctx.Value(contextKeyFields)
	if flds != nil {
		fflds := flds.([]zap.Field)
		return defaultlogger.With(fflds...)
	}
	return defaultlogger
}

// With adds a key=value field to the returned context
func With(ctx context.Context, key string, value interface{}) context.Context {
	fld := zap.Any(key, value)
	return WithFields(ctx, fld)
}

// WithFields adds fields to the returned context
func WithFields(ctx context.Context, fields ...zapcore.Field) context.Context {
	flds := ctx.Value(contextKeyFields)
	var fflds []zap.Field
	if flds != nil {
		fflds = append(fflds, flds.([]zap.Field)...)
	}
	fflds = append(fflds, fields...)
	return context.WithValue(ctx, contextKeyFields, fflds)
}

// Printf logs at Info level
func Printf(format string, v ...interface{}) {
	defaultlogger.Sugar().Infof(format, v...)
}

// Fatalf logs at Fatal level and exits
func Fatalf(format string, v ...interface{}) {
	defaultlogger.Sugar().Fatalf(format, v...)
}
