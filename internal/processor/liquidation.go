// internal/processor/liquidation.go
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

type liquidationEvent struct {
	Symbol string     `json:"symbol"`
	Side   bybit.Side `json:"side"`
	Price  float64    `json:"price"`
	Size   float64    `json:"size"`
	Time   uint64     `json:"time"`
}

type liquidationProcessor struct {
	producer kafka.Producer
	topic    string
	log      *logger.Logger
}

// NewLiquidationProcessor публикует ликвидации в заданный топик.
func NewLiquidationProcessor(p kafka.Producer, topic string, log *logger.Logger) Processor {
	return &liquidationProcessor{producer: p, topic: topic, log: log.Named("liquidation")}
}

func (lp *liquidationProcessor) Process(ctx context.Context, msg bybit.IncomingMessage) error {
	snap, ok := msg.(*bybit.LiquidationSnapshot)
	if !ok {
		return nil
	}

	ctx, span := otel.Tracer("collector/processor/liquidation").Start(ctx, "Process")
	defer span.End()

	start := time.Now()
	for _, l := range snap.Data {
		evt := liquidationEvent{
			Symbol: l.Symbol,
			Side:   l.Side,
			Price:  float64(l.Price),
			Size:   float64(l.Size),
			Time:   l.Time,
		}
		payload, err := json.Marshal(evt)
		if err != nil {
			metrics.SerializeErrors.Inc()
			lp.log.WithContext(ctx).Error("marshal liquidation failed", zap.Error(err))
			span.RecordError(err)
			return err
		}
		if err := lp.producer.Publish(ctx, lp.topic, []byte(l.Symbol), payload); err != nil {
			metrics.PublishErrors.Inc()
			lp.log.WithContext(ctx).Error("publish liquidation failed", zap.Error(err))
			span.RecordError(err)
			return err
		}
	}
	metrics.PublishLatency.Observe(time.Since(start).Seconds())
	return nil
}
