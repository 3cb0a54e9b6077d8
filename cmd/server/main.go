package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/nguyentantai21042004/clipdigest/internal/bootstrap"
	"github.com/nguyentantai21042004/clipdigest/internal/config"
	"github.com/nguyentantai21042004/clipdigest/internal/httpapi"
	"github.com/nguyentantai21042004/clipdigest/internal/logger"
)

func main() {
	configPath := flag.String("config", "", "path to the YAML configuration file (defaults only when empty)")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewWithFormat(cfg.Logging.Level, cfg.Logging.Format, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Build every model client before accepting traffic so a bad key or a
	// missing binary fails the process, not the first request.
	p, err := bootstrap.New(cfg, log).Pipeline()
	if err != nil {
		log.Error(ctx, "Failed to build pipeline: %v", err)
		os.Exit(1)
	}

	srv := httpapi.New(log, p, httpapi.Options{
		Addr:            cfg.Server.Addr,
		RequestTimeout:  cfg.Server.RequestTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})

	if err := srv.Run(ctx); err != nil {
		log.Error(context.Background(), "Server error: %v", err)
		os.Exit(1)
	}
	log.Info(context.Background(), "Server stopped")
}
