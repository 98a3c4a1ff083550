// internal/processor/trade.go
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

// tradeEvent — один публичный трейд. Пакет из stream-а разворачивается
// в отдельные сообщения Kafka.
type tradeEvent struct {
	Symbol        string              `json:"symbol"`
	Side          bybit.Side          `json:"side"`
	Price         float64             `json:"price"`
	Size          float64             `json:"size"`
	TickDirection bybit.TickDirection `json:"tickDirection"`
	TradeID       string              `json:"tradeId"`
	Time          uint64              `json:"time"`
	BlockTrade    bool                `json:"blockTrade"`
}

type tradeProcessor struct {
	producer kafka.Producer
	topic    string
	log      *logger.Logger
}

// NewTradeProcessor публикует публичные трейды в заданный топик.
func NewTradeProcessor(p kafka.Producer, topic string, log *logger.Logger) Processor {
	return &tradeProcessor{producer: p, topic: topic, log: log.Named("trade")}
}

func (tp *tradeProcessor) Process(ctx context.Context, msg bybit.IncomingMessage) error {
	snap, ok := msg.(*bybit.TradeSnapshot)
	if !ok {
		return nil
	}

	ctx, span := otel.Tracer("collector/processor/trade").Start(ctx, "Process")
	defer span.End()

	start := time.Now()
	for _, t := range snap.Data {
		evt := tradeEvent{
			Symbol:        t.Symbol,
			Side:          t.Side,
			Price:         float64(t.Price),
			Size:          float64(t.Size),
			TickDirection: t.TickDirection,
			TradeID:       t.TradeID,
			Time:          t.Time,
			BlockTrade:    t.BlockTrade,
		}
		payload, err := json.Marshal(evt)
		if err != nil {
			metrics.SerializeErrors.Inc()
			tp.log.WithContext(ctx).Error("marshal trade failed", zap.Error(err))
			span.RecordError(err)
			return err
		}
		if err := tp.producer.Publish(ctx, tp.topic, []byte(t.Symbol), payload); err != nil {
			metrics.PublishErrors.Inc()
			tp.log.WithContext(ctx).Error("publish trade failed",
				zap.String("trade_id", t.TradeID),
				zap.Error(err),
			)
			span.RecordError(err)
			return err
		}
	}
	metrics.PublishLatency.Observe(time.Since(start).Seconds())
	return nil
}
