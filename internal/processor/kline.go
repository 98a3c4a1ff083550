// internal/processor/kline.go
package processor

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/yurii-musolov/patisson-api/internal/metrics"
	"github.com/yurii-musolov/patisson-api/pkg/bybit"
	"github.com/yurii-musolov/patisson-api/pkg/kafka"
	"github.com/yurii-musolov/patisson-api/pkg/logger"
)

// klineEvent — одна свеча. Символ извлекается из топика
// "kline.{interval}.{symbol}".
type klineEvent struct {
	Symbol   string         `json:"symbol"`
	Interval bybit.Interval `json:"interval"`
	Start    uint64         `json:"start"`
	End      uint64         `json:"end"`
	Open     float64        `json:"open"`
	Close    float64        `json:"close"`
	High     float64        `json:"high"`
	Low      float64        `json:"low"`
	Volume   float64        `json:"volume"`
	Turnover float64        `json:"turnover"`
	Confirm  bool           `json:"confirm"`
	TS       uint64         `json:"ts"`
}

type klineProcessor struct {
	producer kafka.Producer
	topic    string
	log      *logger.Logger
}

// NewKlineProcessor публикует свечи в заданный топик.
func NewKlineProcessor(p kafka.Producer, topic string, log *logger.Logger) Processor {
	return &klineProcessor{producer: p, topic: topic, log: log.Named("kline")}
}

func (kp *klineProcessor) Process(ctx context.Context, msg bybit.IncomingMessage) error {
	snap, ok := msg.(*bybit.KlineSnapshot)
	if !ok {
		return nil
	}

	ctx, span := otel.Tracer("collector/processor/kline").Start(ctx, "Process")
	defer span.End()

	symbol := symbolFromKlineTopic(snap.Topic)
	start := time.Now()
	for _, k := range snap.Data {
		evt := klineEvent{
			Symbol:   symbol,
			Interval: k.Interval,
			Start:    k.Start,
			End:      k.End,
			Open:     float64(k.Open),
			Close:    float64(k.Close),
			High:     float64(k.High),
			Low:      float64(k.Low),
			Volume:   float64(k.Volume),
			Turnover: float64(k.Turnover),
			Confirm:  k.Confirm,
			TS:       k.Timestamp,
		}
		payload, err := json.Marshal(evt)
		if err != nil {
			metrics.SerializeErrors.Inc()
			kp.log.WithContext(ctx).Error("marshal kline failed", zap.Error(err))
			span.RecordError(err)
			return err
		}
		if err := kp.producer.Publish(ctx, kp.topic, []byte(symbol), payload); err != nil {
			metrics.PublishErrors.Inc()
			kp.log.WithContext(ctx).Error("publish kline failed", zap.Error(err))
			span.RecordError(err)
			return err
		}
	}
	metrics.PublishLatency.Observe(time.Since(start).Seconds())
	return nil
}

// symbolFromKlineTopic возвращает последний сегмент топика.
func symbolFromKlineTopic(topic string) string {
	if i := strings.LastIndexByte(topic, '.'); i >= 0 {
		return topic[i+1:]
	}
	return topic
}
