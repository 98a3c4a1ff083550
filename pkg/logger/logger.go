// pkg/logger/logger.go

package logger

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type contextKey string

const (
	traceIDKey   contextKey = "trace_id"
	requestIDKey contextKey = "request_id"
)

// Config описывает инициализацию zap-логгера.
// Level — "debug" | "info" | "warn" | "error" (по умолчанию "info").
// DevMode — true → консольный вывод для разработки, иначе JSON.
type Config struct {
	Level   string
	DevMode bool
}

func (c *Config) applyDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
}

// Logger — тонкая обёртка над *zap.Logger с поддержкой контекста.
type Logger struct {
	raw *zap.Logger
}

// New создаёт Logger по заданному Config.
func New(cfg Config) (*Logger, error) {
	cfg.applyDefaults()

	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, fmt.Errorf("logger: invalid level %q: %w", cfg.Level, err)
	}

	var zapCfg zap.Config
	if cfg.DevMode {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
		zapCfg.Sampling = &zap.SamplingConfig{Initial: 100, Thereafter: 100}
		zapCfg.EncoderConfig.StacktraceKey = "stacktrace"
	}
	// Единые ключи вывода в обоих режимах.
	zapCfg.EncoderConfig.TimeKey = "ts"
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapCfg.EncoderConfig.CallerKey = "caller"
	zapCfg.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	zapCfg.Level = zap.NewAtomicLevelAt(lvl)

	zl, err := zapCfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, fmt.Errorf("logger: build zap: %w", err)
	}
	return &Logger{raw: zl}, nil
}

// Sync сбрасывает буферы (ошибки игнорируются).
func (l *Logger) Sync() { _ = l.raw.Sync() }

// Named создаёт sub-logger с префиксом.
func (l *Logger) Named(name string) *Logger {
	return &Logger{raw: l.raw.Named(name)}
}

// With возвращает логгер с постоянными полями.
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{raw: l.raw.With(fields...)}
}

// WithContext добавляет поля trace_id и request_id из контекста, если есть.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	fields := make([]zap.Field, 0, 2)
	if v, ok := ctx.Value(traceIDKey).(string); ok {
		fields = append(fields, zap.String(string(traceIDKey), v))
	}
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		fields = append(fields, zap.String(string(requestIDKey), v))
	}
	if len(fields) == 0 {
		return l
	}
	return &Logger{raw: l.raw.With(fields...)}
}

// Sugar возвращает SugaredLogger для printf-стиля.
func (l *Logger) Sugar() *zap.SugaredLogger { return l.raw.Sugar() }

func (l *Logger) Debug(msg string, fields ...zap.Field) { l.raw.Debug(msg, fields...) }
func (l *Logger) Info(msg string, fields ...zap.Field)  { l.raw.Info(msg, fields...) }
func (l *Logger) Warn(msg string, fields ...zap.Field)  { l.raw.Warn(msg, fields...) }
func (l *Logger) Error(msg string, fields ...zap.Field) { l.raw.Error(msg, fields...) }

// ContextWithTraceID возвращает новый контекст с trace-ID.
func ContextWithTraceID(ctx context.Context, tid string) context.Context {
	return context.WithValue(ctx, traceIDKey, tid)
}

// ContextWithRequestID возвращает новый контекст с request-ID.
func ContextWithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey, rid)
}
