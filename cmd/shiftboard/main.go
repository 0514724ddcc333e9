package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"shiftboard/internal/common/logger"
	"shiftboard/internal/config"
	"shiftboard/internal/connections/database"
	"shiftboard/internal/connections/rabbitmq"
	"shiftboard/internal/handlers"
	"shiftboard/internal/repository"
	"shiftboard/internal/service"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	_ = godotenv.Load()

	lg := logger.New("shiftboard")
	defer lg.Sync()

	// os.Exit skips deferred calls, so fatal paths flush explicitly.
	fatal := func(action string, err error) {
		lg.Error(action, err, nil)
		lg.Sync()
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal("config_load_failed", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.Database.DSN())
	if err != nil {
		fatal("db_connect_failed", err)
	}
	defer pool.Close()
	lg.Info("db_connected", nil)

	// The event feed is optional: without a broker the service runs
	// store-only and mutations skip publishing.
	var pub service.EventPublisher
	if cfg.RabbitMQ.URL != "" {
		client, err := rabbitmq.Dial(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			fatal("rabbitmq_connect_failed", err)
		}
		defer client.Close()
		pub = client
		lg.Info("rabbitmq_connected", map[string]any{"exchange": cfg.RabbitMQ.Exchange})
	}

	repo := repository.New(pool)
	svc := service.New(repo, pub, lg, cfg.Policy)
	handler := handlers.New(svc, lg)

	server := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.Port),
		Handler:      handler.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		lg.Info("service_started", map[string]any{"port": cfg.Port})
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			lg.Error("shutdown_error", err, nil)
		}
		lg.Info("service_stopped", nil)
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			fatal("server_error", err)
		}
	}
}
