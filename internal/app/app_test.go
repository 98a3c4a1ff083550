// internal/app/app_test.go
package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/yurii-musolov/patisson-api/internal/config"
	"github.com/yurii-musolov/patisson-api/internal/metrics"
	"github.com/yurii-musolov/patisson-api/internal/processor"
	"github.com/yurii-musolov/patisson-api/pkg/logger"
)

// Счётчик переподключений не учитывает первое подключение: после трёх
// подключений подряд он равен двум.
func TestStreamLoopReconnectCount(t *testing.T) {
	var (
		mu    sync.Mutex
		conns int
	)
	connCh := make(chan struct{}, 8)
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		mu.Lock()
		conns++
		n := conns
		mu.Unlock()
		connCh <- struct{}{}
		// subscribe
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
		if n < 3 {
			return
		}
		// Третье соединение держим открытым до конца теста.
		_, _, _ = conn.ReadMessage()
	}))
	defer srv.Close()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")

	log, err := logger.New(logger.Config{Level: "error"})
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	cfg := &config.Config{Bybit: config.BybitConfig{
		PingInterval:     time.Hour,
		HandshakeTimeout: time.Second,
	}}
	router := processor.NewRouter(log)

	before := testutil.ToFloat64(metrics.Reconnects)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- streamLoop(ctx, cfg, url, []string{"tickers.BTCUSDT"}, router, log)
	}()

	for i := 0; i < 3; i++ {
		select {
		case <-connCh:
		case <-time.After(5 * time.Second):
			t.Fatalf("timeout waiting for connection %d", i+1)
		}
	}

	// Третья сессия остаётся открытой, поэтому счётчик стабилизируется
	// ровно на двух переподключениях.
	deadline := time.Now().Add(3 * time.Second)
	for testutil.ToFloat64(metrics.Reconnects)-before < 2 {
		if time.Now().After(deadline) {
			t.Fatalf("reconnects = %v, want 2", testutil.ToFloat64(metrics.Reconnects)-before)
		}
		time.Sleep(10 * time.Millisecond)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("streamLoop did not stop after cancel")
	}

	if got := testutil.ToFloat64(metrics.Reconnects) - before; got != 2 {
		t.Fatalf("reconnects = %v after 3 connections, want 2", got)
	}
}

func TestBuildTopics(t *testing.T) {
	topics := buildTopics(config.BybitConfig{
		Symbols:        []string{"BTCUSDT", "ETHUSDT"},
		KlineIntervals: []string{"1", "5"},
	})
	want := []string{
		"tickers.BTCUSDT", "publicTrade.BTCUSDT", "allLiquidation.BTCUSDT",
		"kline.1.BTCUSDT", "kline.5.BTCUSDT",
		"tickers.ETHUSDT", "publicTrade.ETHUSDT", "allLiquidation.ETHUSDT",
		"kline.1.ETHUSDT", "kline.5.ETHUSDT",
	}
	if len(topics) != len(want) {
		t.Fatalf("topics = %v, want %v", topics, want)
	}
	for i := range want {
		if topics[i] != want[i] {
			t.Fatalf("topics[%d] = %q, want %q", i, topics[i], want[i])
		}
	}
}
