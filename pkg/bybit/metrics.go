// pkg/bybit/metrics.go
package bybit

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Счётчики stream-сессии. Регистрация выполняется один раз на процесс;
// до вызова RegisterMetrics сессии работают без метрик.
var (
	metricsOnce sync.Once

	messagesTotal     *prometheus.CounterVec
	decodeErrorsTotal prometheus.Counter
	encodeErrorsTotal prometheus.Counter
	readErrorsTotal   prometheus.Counter
	writeErrorsTotal  prometheus.Counter
	pingsTotal        prometheus.Counter
	connectsTotal     *prometheus.CounterVec
)

// RegisterMetrics регистрирует счётчики пакета в переданном Registerer.
// nil означает prometheus.DefaultRegisterer. Повторные вызовы игнорируются.
func RegisterMetrics(r prometheus.Registerer) {
	metricsOnce.Do(func() {
		if r == nil {
			r = prometheus.DefaultRegisterer
		}
		factory := promauto.With(r)

		messagesTotal = factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "patisson",
			Subsystem: "bybit_stream",
			Name:      "messages_total",
			Help:      "Inbound messages by variant",
		}, []string{"kind"})

		decodeErrorsTotal = factory.NewCounter(prometheus.CounterOpts{
			Namespace: "patisson",
			Subsystem: "bybit_stream",
			Name:      "decode_errors_total",
			Help:      "Inbound frames that failed to decode",
		})

		encodeErrorsTotal = factory.NewCounter(prometheus.CounterOpts{
			Namespace: "patisson",
			Subsystem: "bybit_stream",
			Name:      "encode_errors_total",
			Help:      "Outbound commands dropped on encode failure",
		})

		readErrorsTotal = factory.NewCounter(prometheus.CounterOpts{
			Namespace: "patisson",
			Subsystem: "bybit_stream",
			Name:      "read_errors_total",
			Help:      "Transport errors that terminated the read loop",
		})

		writeErrorsTotal = factory.NewCounter(prometheus.CounterOpts{
			Namespace: "patisson",
			Subsystem: "bybit_stream",
			Name:      "write_errors_total",
			Help:      "Transport errors on outbound frames",
		})

		pingsTotal = factory.NewCounter(prometheus.CounterOpts{
			Namespace: "patisson",
			Subsystem: "bybit_stream",
			Name:      "pings_total",
			Help:      "Keepalive pings scheduled",
		})

		connectsTotal = factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "patisson",
			Subsystem: "bybit_stream",
			Name:      "connects_total",
			Help:      "Connection attempts by status",
		}, []string{"status"})
	})
}

func incMessage(kind Kind) {
	if messagesTotal != nil {
		messagesTotal.WithLabelValues(string(kind)).Inc()
	}
}

func incCounter(c prometheus.Counter) {
	if c != nil {
		c.Inc()
	}
}

func incConnect(status string) {
	if connectsTotal != nil {
		connectsTotal.WithLabelValues(status).Inc()
	}
}
