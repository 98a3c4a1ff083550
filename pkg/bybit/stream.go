// pkg/bybit/stream.go
package bybit

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/yurii-musolov/patisson-api/pkg/logger"
)

const (
	defaultPingInterval     = 20 * time.Second
	defaultHandshakeTimeout = 10 * time.Second
	controlWriteTimeout     = 5 * time.Second
)

// Config задаёт параметры одной stream-сессии.
type Config struct {
	// URL — полный адрес endpoint-а, например
	// StreamMainnet + PathPublicLinear.
	URL string

	// PingInterval — период application-level ping-ов. Биржа разрывает
	// соединение без ping-а раз в ~20 секунд.
	PingInterval time.Duration

	// HandshakeTimeout ограничивает WebSocket handshake.
	HandshakeTimeout time.Duration
}

func (c *Config) applyDefaults() {
	if c.PingInterval <= 0 {
		c.PingInterval = defaultPingInterval
	}
	if c.HandshakeTimeout <= 0 {
		c.HandshakeTimeout = defaultHandshakeTimeout
	}
}

func (c Config) validate() error {
	if c.URL == "" {
		return errors.New("bybit: stream url is required")
	}
	return nil
}

// Session — открытое соединение со stream endpoint-ом.
//
// Сессия обслуживается тремя горутинами: чтение, запись и keepalive.
// Обе очереди имеют ёмкость 1, поэтому медленный потребитель Messages
// тормозит чтение из сокета, а не приводит к потере сообщений.
//
// Сессия не переподключается сама: после терминальной ошибки чтения или
// close-фрейма канал Messages закрывается, Done срабатывает, и решение
// об открытии новой сессии остаётся за вызывающим кодом.
type Session struct {
	conn *websocket.Conn
	log  *logger.Logger

	commands chan OutgoingMessage
	messages chan IncomingMessage

	ctx    context.Context
	cancel context.CancelFunc

	closeOnce sync.Once
	closeErr  error
}

// Open выполняет handshake и запускает горутины сессии. Ошибка handshake
// фатальна: сессия не создаётся. Отмена ctx завершает сессию.
func Open(ctx context.Context, cfg Config, log *logger.Logger) (*Session, error) {
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if log == nil {
		return nil, errors.New("bybit: logger is required")
	}
	log = log.Named("bybit-stream")

	dialer := websocket.Dialer{HandshakeTimeout: cfg.HandshakeTimeout}
	conn, resp, err := dialer.DialContext(ctx, cfg.URL, nil)
	if err != nil {
		incConnect("error")
		if resp != nil {
			return nil, fmt.Errorf("bybit: dial %s: status %d: %w", cfg.URL, resp.StatusCode, err)
		}
		return nil, fmt.Errorf("bybit: dial %s: %w", cfg.URL, err)
	}
	incConnect("ok")
	log.Info("stream connected", zap.String("url", cfg.URL))

	sctx, cancel := context.WithCancel(ctx)
	s := &Session{
		conn:     conn,
		log:      log,
		commands: make(chan OutgoingMessage, 1),
		messages: make(chan IncomingMessage, 1),
		ctx:      sctx,
		cancel:   cancel,
	}

	conn.SetPingHandler(func(payload string) error {
		s.log.Debug("protocol ping", zap.Int("payload_len", len(payload)))
		return conn.WriteControl(websocket.PongMessage, []byte(payload), time.Now().Add(controlWriteTimeout))
	})
	conn.SetPongHandler(func(string) error {
		s.log.Debug("protocol pong")
		return nil
	})

	go s.readPump()
	go s.writePump()
	go s.keepalive(cfg.PingInterval)

	// Отмена контекста должна разблокировать ReadMessage.
	go func() {
		<-sctx.Done()
		_ = s.Close()
	}()

	return s, nil
}

// Messages возвращает канал входящих сообщений. Канал закрывается, когда
// сессия завершена и все прочитанные сообщения доставлены.
func (s *Session) Messages() <-chan IncomingMessage { return s.messages }

// Send ставит команду в очередь на отправку. Блокируется, пока в очереди
// нет места; возвращает ошибку при отмене ctx или завершении сессии.
func (s *Session) Send(ctx context.Context, msg OutgoingMessage) error {
	if s.ctx.Err() != nil {
		return fmt.Errorf("bybit: send %s: session closed", msg.Op)
	}
	select {
	case s.commands <- msg:
		return nil
	case <-s.ctx.Done():
		return fmt.Errorf("bybit: send %s: session closed", msg.Op)
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done срабатывает при завершении сессии по любой причине.
func (s *Session) Done() <-chan struct{} { return s.ctx.Done() }

// Close завершает сессию и закрывает соединение. Безопасен для повторных
// вызовов и вызовов из нескольких горутин.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.cancel()
		s.closeErr = s.conn.Close()
	})
	return s.closeErr
}

// readPump читает фреймы до терминальной ошибки. Ошибки декодирования не
// терминальны: фрейм логируется и чтение продолжается.
func (s *Session) readPump() {
	defer close(s.messages)
	defer s.Close() //nolint:errcheck // останавливает writePump и keepalive

	for {
		frameType, data, err := s.conn.ReadMessage()
		if err != nil {
			s.logReadEnd(err)
			return
		}
		if frameType != websocket.TextMessage {
			s.log.Debug("non-text frame skipped", zap.Int("frame_type", frameType), zap.Int("len", len(data)))
			continue
		}

		msg, err := Decode(data)
		if err != nil {
			incCounter(decodeErrorsTotal)
			s.log.Error("decode failed", zap.Error(err))
			continue
		}
		incMessage(msg.Kind())

		select {
		case s.messages <- msg:
		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Session) logReadEnd(err error) {
	var closeErr *websocket.CloseError
	switch {
	case s.ctx.Err() != nil:
		s.log.Debug("read loop stopped", zap.Error(err))
	case errors.As(err, &closeErr):
		s.log.Info("stream closed by peer",
			zap.Int("code", closeErr.Code),
			zap.String("reason", closeErr.Text))
	default:
		incCounter(readErrorsTotal)
		s.log.Error("read failed", zap.Error(err))
	}
}

// writePump сериализует и отправляет команды. Ошибки кодирования и записи
// не терминальны: команда отбрасывается, цикл продолжается.
func (s *Session) writePump() {
	for {
		select {
		case <-s.ctx.Done():
			return
		case cmd := <-s.commands:
			data, err := Encode(cmd)
			if err != nil {
				incCounter(encodeErrorsTotal)
				s.log.Error("encode failed", zap.String("op", string(cmd.Op)), zap.Error(err))
				continue
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				incCounter(writeErrorsTotal)
				s.log.Error("write failed", zap.String("op", string(cmd.Op)), zap.Error(err))
				continue
			}
		}
	}
}

// keepalive ставит в очередь ping с монотонным req_id: ping-1, ping-2, ...
// Счётчик позволяет сопоставить pong-ответ с конкретным ping-ом.
func (s *Session) keepalive(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var seq uint64
	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			seq++
			select {
			case s.commands <- Ping(fmt.Sprintf("ping-%d", seq)):
				incCounter(pingsTotal)
			case <-s.ctx.Done():
				return
			}
		}
	}
}
