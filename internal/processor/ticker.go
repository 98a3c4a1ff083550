// internal/processor/ticker.go
package processor

import (
	"context"
	"encoding/json"
	"time"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/yurii-musolov/patisson-api/internal/metrics"
	"github.com/yurii-musolov/patisson-api/pkg/bybit"
	"github.com/yurii-musolov/patisson-api/pkg/kafka"
	"github.com/yurii-musolov/patisson-api/pkg/logger"
)

// tickerEvent — нормализованное ticker-событие, публикуемое в Kafka.
// Снимки и дельты отличаются полем type; пустые значения сериализуются
// как null.
type tickerEvent struct {
	Type   string           `json:"type"`
	Symbol string           `json:"symbol"`
	TS     uint64           `json:"ts"`
	CS     bybit.OptUint    `json:"cs"`
	Data   bybit.TickerData `json:"data"`
}

type tickerProcessor struct {
	producer kafka.Producer
	topic    string
	log      *logger.Logger
}

// NewTickerProcessor публикует снимки и дельты тикера в заданный топик.
// Ключом сообщения служит символ, чтобы события одного инструмента
// попадали в одну партицию.
func NewTickerProcessor(p kafka.Producer, topic string, log *logger.Logger) Processor {
	return &tickerProcessor{producer: p, topic: topic, log: log.Named("ticker")}
}

func (tp *tickerProcessor) Process(ctx context.Context, msg bybit.IncomingMessage) error {
	ctx, span := otel.Tracer("collector/processor/ticker").Start(ctx, "Process")
	defer span.End()

	var evt tickerEvent
	switch m := msg.(type) {
	case *bybit.TickerSnapshot:
		evt = tickerEvent{Type: "snapshot", Symbol: m.Data.Symbol, TS: m.TS, CS: m.CS, Data: m.Data}
	case *bybit.TickerDelta:
		evt = tickerEvent{Type: "delta", Symbol: m.Data.Symbol, TS: m.TS, CS: m.CS, Data: m.Data}
	default:
		return nil
	}

	payload, err := json.Marshal(evt)
	if err != nil {
		metrics.SerializeErrors.Inc()
		tp.log.WithContext(ctx).Error("marshal ticker failed", zap.Error(err))
		span.RecordError(err)
		return err
	}

	start := time.Now()
	if err := tp.producer.Publish(ctx, tp.topic, []byte(evt.Symbol), payload); err != nil {
		metrics.PublishErrors.Inc()
		tp.log.WithContext(ctx).Error("publish ticker failed", zap.Error(err))
		span.RecordError(err)
		return err
	}
	metrics.PublishLatency.Observe(time.Since(start).Seconds())
	return nil
}
