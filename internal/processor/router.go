// internal/processor/router.go
package processor

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/yurii-musolov/patisson-api/internal/metrics"
	"github.com/yurii-musolov/patisson-api/pkg/bybit"
	"github.com/yurii-musolov/patisson-api/pkg/logger"
)

var routerTracer = otel.Tracer("collector/processor/router")

// Router маршрутизирует входящие сообщения по их виду.
type Router struct {
	processors map[bybit.Kind]Processor
	log        *logger.Logger
}

// NewRouter создает маршрутизатор с логгером.
func NewRouter(log *logger.Logger) *Router {
	return &Router{
		processors: make(map[bybit.Kind]Processor),
		log:        log.Named("router"),
	}
}

// Register добавляет обработчик для заданного вида сообщений.
func (r *Router) Register(kind bybit.Kind, proc Processor) {
	r.processors[kind] = proc
}

// Run читает канал до его закрытия. Подтверждения команд логируются
// всегда; прочие сообщения уходят в зарегистрированные обработчики.
func (r *Router) Run(ctx context.Context, in <-chan bybit.IncomingMessage) error {
	ctx, span := routerTracer.Start(ctx, "Router.Run")
	defer span.End()

	for msg := range in {
		kind := msg.Kind()
		metrics.EventsTotal.WithLabelValues(string(kind)).Inc()

		if ack, ok := msg.(*bybit.CommandAck); ok {
			r.logAck(ctx, ack)
			if proc, ok := r.processors[kind]; ok {
				if err := proc.Process(ctx, msg); err != nil {
					r.log.WithContext(ctx).Error("ack processing failed", zap.Error(err))
				}
			}
			continue
		}

		proc, ok := r.processors[kind]
		if !ok {
			metrics.UnsupportedEvents.Inc()
			r.log.WithContext(ctx).Debug("no processor for kind", zap.String("kind", string(kind)))
			continue
		}
		if err := proc.Process(ctx, msg); err != nil {
			r.log.WithContext(ctx).Error("event processing failed",
				zap.String("kind", string(kind)),
				zap.Error(err),
			)
		}
	}
	return ctx.Err()
}

func (r *Router) logAck(ctx context.Context, ack *bybit.CommandAck) {
	fields := []zap.Field{
		zap.String("op", string(ack.Op)),
		zap.String("req_id", ack.ReqID),
		zap.String("conn_id", ack.ConnID),
	}
	if !ack.OK() {
		r.log.WithContext(ctx).Error("command rejected", append(fields, zap.String("ret_msg", ack.RetMsg))...)
		return
	}
	r.log.WithContext(ctx).Debug("command acknowledged", fields...)
}
