// pkg/kafka/producer.go
package kafka

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/IBM/sarama"
	"github.com/dnwe/otelsarama"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/yurii-musolov/patisson-api/pkg/backoff"
	"github.com/yurii-musolov/patisson-api/pkg/logger"
)

var tracer = otel.Tracer("kafka-producer")

var producerMetrics = struct {
	ConnectAttempts prometheus.Counter
	ConnectErrors   prometheus.Counter
	PublishSuccess  *prometheus.CounterVec
	PublishErrors   *prometheus.CounterVec
	PublishLatency  prometheus.Histogram
}{
	ConnectAttempts: promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "patisson", Subsystem: "kafka_producer", Name: "connect_attempts_total",
		Help: "Kafka producer connect attempts",
	}),
	ConnectErrors: promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "patisson", Subsystem: "kafka_producer", Name: "connect_errors_total",
		Help: "Kafka producer connect errors",
	}),
	PublishSuccess: promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "patisson", Subsystem: "kafka_producer", Name: "publish_success_total",
		Help: "Successful publishes",
	}, []string{"topic"}),
	PublishErrors: promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "patisson", Subsystem: "kafka_producer", Name: "publish_errors_total",
		Help: "Publish errors",
	}, []string{"topic"}),
	PublishLatency: promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "patisson", Subsystem: "kafka_producer", Name: "publish_latency_seconds",
		Help:    "Publish latency (seconds)",
		Buckets: prometheus.DefBuckets,
	}),
}

// Config groups all tunables for a Kafka sync-producer.
// Zero values are replaced with sane defaults.
type Config struct {
	Brokers        []string       // список адресов брокеров
	RequiredAcks   string         // "all" (дефолт) | "leader" | "none"
	Timeout        time.Duration  // ожидание ack от кластера
	Compression    string         // "none" (дефолт) | "gzip" | "snappy" | "lz4" | "zstd"
	FlushFrequency time.Duration  // периодический flush буфера, 0 → disable
	FlushMessages  int            // пороговое число сообщений для flush, 0 → disable
	Backoff        backoff.Config // стратегия ретраев подключения и отправки
}

func (c *Config) applyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = 5 * time.Second
	}
	if c.RequiredAcks == "" {
		c.RequiredAcks = "all"
	}
	if c.Compression == "" {
		c.Compression = "none"
	}
}

func (c Config) validate() error {
	if len(c.Brokers) == 0 {
		return fmt.Errorf("kafka producer: brokers required")
	}
	return nil
}

func buildSaramaConfig(c Config) (*sarama.Config, error) {
	sc := sarama.NewConfig()

	switch strings.ToLower(c.RequiredAcks) {
	case "all":
		sc.Producer.RequiredAcks = sarama.WaitForAll
	case "leader":
		sc.Producer.RequiredAcks = sarama.WaitForLocal
	case "none":
		sc.Producer.RequiredAcks = sarama.NoResponse
	default:
		return nil, fmt.Errorf("kafka producer: invalid RequiredAcks %q", c.RequiredAcks)
	}

	sc.Producer.Return.Successes = true
	sc.Producer.Return.Errors = true
	sc.Producer.Timeout = c.Timeout
	sc.Producer.Idempotent = true
	sc.Net.MaxOpenRequests = 1

	if c.FlushFrequency > 0 {
		sc.Producer.Flush.Frequency = c.FlushFrequency
	}
	if c.FlushMessages > 0 {
		sc.Producer.Flush.Messages = c.FlushMessages
	}

	switch strings.ToLower(c.Compression) {
	case "none":
		sc.Producer.Compression = sarama.CompressionNone
	case "gzip":
		sc.Producer.Compression = sarama.CompressionGZIP
	case "snappy":
		sc.Producer.Compression = sarama.CompressionSnappy
	case "lz4":
		sc.Producer.Compression = sarama.CompressionLZ4
	case "zstd":
		sc.Producer.Compression = sarama.CompressionZSTD
	default:
		return nil, fmt.Errorf("kafka producer: invalid Compression %q", c.Compression)
	}

	return sc, nil
}

type kafkaProducer struct {
	prod       sarama.SyncProducer
	client     sarama.Client
	log        *logger.Logger
	backoffCfg backoff.Config
}

// New создаёт SyncProducer с ретраями подключения.
func New(ctx context.Context, cfg Config, log *logger.Logger) (Producer, error) {
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	log = log.Named("kafka-producer")

	sc, err := buildSaramaConfig(cfg)
	if err != nil {
		return nil, err
	}

	client, err := sarama.NewClient(cfg.Brokers, sc)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: new client: %w", err)
	}

	var syncProd sarama.SyncProducer
	connect := func(ctx context.Context) error {
		producerMetrics.ConnectAttempts.Inc()
		p, err := sarama.NewSyncProducerFromClient(client)
		if err != nil {
			producerMetrics.ConnectErrors.Inc()
			return err
		}
		syncProd = p
		return nil
	}

	ctxConn, span := tracer.Start(ctx, "Connect",
		trace.WithAttributes(attribute.StringSlice("brokers", cfg.Brokers)))
	if err := backoff.Execute(ctxConn, cfg.Backoff, "kafka-connect", log, connect); err != nil {
		span.RecordError(err)
		span.End()
		_ = client.Close()
		log.Error("kafka producer connect failed", zap.Error(err))
		return nil, fmt.Errorf("kafka producer: connect: %w", err)
	}
	span.End()

	log.Info("kafka producer ready", zap.Strings("brokers", cfg.Brokers))
	return &kafkaProducer{
		prod:       otelsarama.WrapSyncProducer(sc, syncProd),
		client:     client,
		log:        log,
		backoffCfg: cfg.Backoff,
	}, nil
}

// Publish отправляет сообщение в Kafka с ретраями.
func (k *kafkaProducer) Publish(ctx context.Context, topic string, key, value []byte) error {
	ctxPub, span := tracer.Start(ctx, "Publish", trace.WithAttributes(attribute.String("topic", topic)))
	defer span.End()
	start := time.Now()

	send := func(ctx context.Context) error {
		msg := &sarama.ProducerMessage{
			Topic: topic,
			Key:   sarama.ByteEncoder(key),
			Value: sarama.ByteEncoder(value),
		}
		_, _, err := k.prod.SendMessage(msg)
		return err
	}

	err := backoff.Execute(ctxPub, k.backoffCfg, "kafka-publish", k.log, send)
	producerMetrics.PublishLatency.Observe(time.Since(start).Seconds())

	if err != nil {
		producerMetrics.PublishErrors.WithLabelValues(topic).Inc()
		span.RecordError(err)
		k.log.Error("publish failed", zap.String("topic", topic), zap.Error(err))
		return err
	}

	producerMetrics.PublishSuccess.WithLabelValues(topic).Inc()
	return nil
}

// Ping обновляет метаданные клиента, проверяя доступность кластера.
func (k *kafkaProducer) Ping(ctx context.Context) error {
	_, span := tracer.Start(ctx, "Ping")
	defer span.End()
	if err := k.client.RefreshMetadata(); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

// Close корректно закрывает продьюсер и клиент.
func (k *kafkaProducer) Close() error {
	if err := k.prod.Close(); err != nil {
		k.log.Error("producer close failed", zap.Error(err))
		return err
	}
	if err := k.client.Close(); err != nil {
		k.log.Error("client close failed", zap.Error(err))
		return err
	}
	k.log.Info("kafka producer closed")
	return nil
}
