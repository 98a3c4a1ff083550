// pkg/telemetry/otel.go
package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.uber.org/zap"

	"github.com/yurii-musolov/patisson-api/pkg/logger"
)

// Config содержит параметры для инициализации OpenTelemetry.
type Config struct {
	Endpoint        string        // OTLP-collector "host:port"
	ServiceName     string        // имя сервиса
	ServiceVersion  string        // версия сборки
	Insecure        bool          // true → gRPC без TLS
	ReconnectPeriod time.Duration // период переподключения экспортёра
	Timeout         time.Duration // таймаут Init/Shutdown
	SamplerRatio    float64       // 0.0…1.0 — доля выборки span'ов
}

func (c *Config) applyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = 5 * time.Second
	}
	if c.ReconnectPeriod <= 0 {
		c.ReconnectPeriod = 5 * time.Second
	}
	if c.SamplerRatio < 0 || c.SamplerRatio > 1 {
		c.SamplerRatio = 1
	}
}

func (c Config) validate() error {
	switch {
	case c.Endpoint == "":
		return fmt.Errorf("telemetry: endpoint is required")
	case c.ServiceName == "":
		return fmt.Errorf("telemetry: service name is required")
	case c.ServiceVersion == "":
		return fmt.Errorf("telemetry: service version is required")
	default:
		return nil
	}
}

// InitTracer инициализирует глобальный TracerProvider и возвращает
// shutdown-функцию.
func InitTracer(ctx context.Context, cfg Config, log *logger.Logger) (func(context.Context) error, error) {
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	initCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	opts := []otlptracegrpc.Option{
		otlptracegrpc.WithEndpoint(cfg.Endpoint),
		otlptracegrpc.WithReconnectionPeriod(cfg.ReconnectPeriod),
	}
	if cfg.Insecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}
	exp, err := otlptracegrpc.New(initCtx, opts...)
	if err != nil {
		log.Error("telemetry: exporter creation failed", zap.Error(err))
		return nil, fmt.Errorf("telemetry: exporter: %w", err)
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(cfg.ServiceName),
			semconv.ServiceVersionKey.String(cfg.ServiceVersion),
		),
	)
	if err != nil {
		log.Error("telemetry: resource creation failed", zap.Error(err))
		return nil, fmt.Errorf("telemetry: resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SamplerRatio))),
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	log.Info("telemetry: initialized",
		zap.String("service", cfg.ServiceName),
		zap.String("version", cfg.ServiceVersion),
	)

	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Error("telemetry: shutdown failed", zap.Error(err))
			return err
		}
		log.Info("telemetry: shutdown complete")
		return nil
	}, nil
}
