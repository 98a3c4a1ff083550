// internal/metrics/metrics.go
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	// EventsTotal — число событий, принятых из stream-а, по виду.
	EventsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "patisson",
		Subsystem: "collector",
		Name:      "events_total",
		Help:      "Stream events received, by kind",
	}, []string{"kind"})

	// UnsupportedEvents — события без зарегистрированного обработчика.
	UnsupportedEvents = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "patisson",
		Subsystem: "collector",
		Name:      "unsupported_events_total",
		Help:      "Stream events with no registered processor",
	})

	// SerializeErrors — ошибки сериализации событий перед публикацией.
	SerializeErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "patisson",
		Subsystem: "collector",
		Name:      "serialize_errors_total",
		Help:      "Events that failed to serialize",
	})

	// PublishErrors — ошибки публикации в Kafka.
	PublishErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "patisson",
		Subsystem: "kafka",
		Name:      "publish_errors_total",
		Help:      "Errors when publishing to Kafka",
	})

	// PublishLatency — задержка от получения события до публикации.
	PublishLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "patisson",
		Subsystem: "pipeline",
		Name:      "publish_latency_seconds",
		Help:      "Latency from receiving a stream event to publishing it (seconds)",
		Buckets:   prometheus.DefBuckets,
	})

	// Reconnects — число переподключений к stream-у.
	Reconnects = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "patisson",
		Subsystem: "collector",
		Name:      "reconnects_total",
		Help:      "Stream reconnect attempts",
	})
)

// Register регистрирует все метрики в заданном реестре. Без аргументов
// используется DefaultRegisterer. Повторные вызовы игнорируются.
func Register(registerers ...prometheus.Registerer) {
	once.Do(func() {
		var reg prometheus.Registerer
		if len(registerers) > 0 && registerers[0] != nil {
			reg = registerers[0]
		} else {
			reg = prometheus.DefaultRegisterer
		}
		reg.MustRegister(
			EventsTotal,
			UnsupportedEvents,
			SerializeErrors,
			PublishErrors,
			PublishLatency,
			Reconnects,
		)
	})
}
