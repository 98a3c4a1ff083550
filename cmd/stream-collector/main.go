// cmd/stream-collector/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/yurii-musolov/patisson-api/internal/app"
	"github.com/yurii-musolov/patisson-api/internal/config"
	"github.com/yurii-musolov/patisson-api/pkg/logger"
)

func main() {
	configPath := pflag.String("config", "", "path to config file (optional, ENV otherwise)")
	pflag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{Level: cfg.Logging.Level, DevMode: cfg.Logging.DevMode})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init error: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if cfg.Logging.DevMode {
		cfg.Print()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log.Sugar().Infow("starting service",
		"service.name", cfg.ServiceName,
		"service.version", cfg.ServiceVersion,
	)

	if err := app.Run(ctx, cfg, log); err != nil {
		log.Sugar().Errorw("application exited with error", "error", err)
		os.Exit(1)
	}

	log.Sugar().Infow("shutdown complete")
}
