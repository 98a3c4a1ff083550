// internal/processor/processor.go
package processor

import (
	"context"

	"github.com/yurii-musolov/patisson-api/pkg/bybit"
)

// Processor обрабатывает одно входящее сообщение stream-а.
// Ошибки обработки не останавливают маршрутизацию.
type Processor interface {
	Process(ctx context.Context, msg bybit.IncomingMessage) error
}
