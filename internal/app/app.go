// internal/app/app.go
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/yurii-musolov/patisson-api/internal/config"
	"github.com/yurii-musolov/patisson-api/internal/metrics"
	"github.com/yurii-musolov/patisson-api/internal/processor"
	"github.com/yurii-musolov/patisson-api/pkg/backoff"
	"github.com/yurii-musolov/patisson-api/pkg/bybit"
	"github.com/yurii-musolov/patisson-api/pkg/httpserver"
	"github.com/yurii-musolov/patisson-api/pkg/kafka"
	"github.com/yurii-musolov/patisson-api/pkg/logger"
	"github.com/yurii-musolov/patisson-api/pkg/telemetry"
)

// Run собирает все компоненты и блокируется до отмены ctx или фатальной
// ошибки.
func Run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	metrics.Register(nil)
	bybit.RegisterMetrics(nil)

	shutdownTracer, err := telemetry.InitTracer(ctx, telemetry.Config{
		Endpoint:       cfg.Telemetry.OTLPEndpoint,
		ServiceName:    cfg.ServiceName,
		ServiceVersion: cfg.ServiceVersion,
		Insecure:       cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		return fmt.Errorf("init tracer: %w", err)
	}
	defer shutdownSafe(ctx, "telemetry", func() error { return shutdownTracer(ctx) }, log)

	producer, err := kafka.New(ctx, kafka.Config{
		Brokers:        cfg.Kafka.Brokers,
		RequiredAcks:   cfg.Kafka.RequiredAcks,
		Timeout:        cfg.Kafka.Timeout,
		Compression:    cfg.Kafka.Compression,
		FlushFrequency: cfg.Kafka.FlushFrequency,
		FlushMessages:  cfg.Kafka.FlushMessages,
		Backoff:        cfg.Kafka.Backoff,
	}, log)
	if err != nil {
		return fmt.Errorf("kafka producer init: %w", err)
	}
	defer shutdownSafe(ctx, "kafka-producer", producer.Close, log)

	router := processor.NewRouter(log)
	router.Register(bybit.KindTickerSnapshot, processor.NewTickerProcessor(producer, cfg.Kafka.TickersTopic, log))
	router.Register(bybit.KindTickerDelta, processor.NewTickerProcessor(producer, cfg.Kafka.TickersTopic, log))
	router.Register(bybit.KindTrade, processor.NewTradeProcessor(producer, cfg.Kafka.TradesTopic, log))
	router.Register(bybit.KindKline, processor.NewKlineProcessor(producer, cfg.Kafka.KlinesTopic, log))
	router.Register(bybit.KindLiquidation, processor.NewLiquidationProcessor(producer, cfg.Kafka.LiquidationsTopic, log))

	httpSrv, err := httpserver.New(httpserver.Config{
		Addr:            cfg.HTTP.Addr,
		ReadTimeout:     cfg.HTTP.ReadTimeout,
		WriteTimeout:    cfg.HTTP.WriteTimeout,
		IdleTimeout:     cfg.HTTP.IdleTimeout,
		ShutdownTimeout: cfg.HTTP.ShutdownTimeout,
		MetricsPath:     cfg.HTTP.MetricsPath,
		HealthzPath:     cfg.HTTP.HealthzPath,
		ReadyzPath:      cfg.HTTP.ReadyzPath,
	}, producer.Ping, log)
	if err != nil {
		return fmt.Errorf("httpserver init: %w", err)
	}

	streamURL, err := bybit.PublicStreamURL(cfg.Bybit.BaseURL, bybit.Category(cfg.Bybit.Category))
	if err != nil {
		return err
	}
	topics := buildTopics(cfg.Bybit)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return httpSrv.Run(ctx) })
	g.Go(func() error { return streamLoop(ctx, cfg, streamURL, topics, router, log) })

	if err := g.Wait(); err != nil {
		if errors.Is(err, context.Canceled) {
			log.WithContext(ctx).Info("collector stopped by context")
			return nil
		}
		return err
	}
	return nil
}

// streamLoop держит одну stream-сессию и переподключается с backoff-ом,
// когда сессия завершается.
func streamLoop(ctx context.Context, cfg *config.Config, url string, topics []string, router *processor.Router, log *logger.Logger) error {
	for attempt := 0; ; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		var session *bybit.Session
		err := backoff.Execute(ctx, cfg.Bybit.Backoff, "bybit-connect", log, func(ctx context.Context) error {
			s, e := bybit.Open(ctx, bybit.Config{
				URL:              url,
				PingInterval:     cfg.Bybit.PingInterval,
				HandshakeTimeout: cfg.Bybit.HandshakeTimeout,
			}, log)
			if e == nil {
				session = s
			}
			return e
		})
		if err != nil {
			return fmt.Errorf("stream connect: %w", err)
		}
		// Первое подключение — не переподключение.
		if attempt > 0 {
			metrics.Reconnects.Inc()
		}

		if err := session.Send(ctx, bybit.Subscribe(uuid.NewString(), topics...)); err != nil {
			log.WithContext(ctx).Error("subscribe failed", zap.Error(err))
			_ = session.Close()
			continue
		}
		log.WithContext(ctx).Info("subscribed", zap.Int("topics", len(topics)))

		if err := router.Run(ctx, session.Messages()); err != nil && !errors.Is(err, context.Canceled) {
			log.WithContext(ctx).Error("router stopped", zap.Error(err))
		}
		_ = session.Close()
		log.WithContext(ctx).Warn("stream session ended, reconnecting")
	}
}

// buildTopics разворачивает конфигурацию подписок в список топиков.
func buildTopics(cfg config.BybitConfig) []string {
	topics := make([]string, 0, len(cfg.Symbols)*(3+len(cfg.KlineIntervals)))
	for _, s := range cfg.Symbols {
		topics = append(topics, bybit.TopicTicker(s), bybit.TopicTrade(s), bybit.TopicAllLiquidation(s))
		for _, i := range cfg.KlineIntervals {
			topics = append(topics, bybit.TopicKline(bybit.Interval(i), s))
		}
	}
	return topics
}

// shutdownSafe оборачивает вызов Close()/Shutdown() с логированием.
func shutdownSafe(ctx context.Context, name string, fn func() error, log *logger.Logger) {
	if err := fn(); err != nil {
		log.WithContext(ctx).Error(fmt.Sprintf("%s shutdown error", name), zap.Error(err))
	} else {
		log.WithContext(ctx).Info(fmt.Sprintf("%s: shutdown complete", name))
	}
}
