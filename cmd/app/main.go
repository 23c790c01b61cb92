package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/osse101/seedling/internal/admin"
	"github.com/osse101/seedling/internal/bootstrap"
	"github.com/osse101/seedling/internal/clock"
	"github.com/osse101/seedling/internal/config"
	"github.com/osse101/seedling/internal/database"
	"github.com/osse101/seedling/internal/message"
	"github.com/osse101/seedling/internal/server"
	"github.com/osse101/seedling/internal/sse"
	"github.com/osse101/seedling/internal/tree"
	"github.com/osse101/seedling/internal/worker"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logCloser, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := database.Open(ctx, cfg)
	if err != nil {
		return err
	}

	notifier, err := bootstrap.NewNotifier(cfg)
	if err != nil {
		_ = store.Close()
		return err
	}

	hub := sse.NewHub()
	hub.Start()

	clk := clock.NewRealClock()
	secret := admin.NewSecret(cfg.AdminPassword)

	treeService := tree.NewService(store, clk, secret, hub, notifier, cfg.StorageTimeout)
	messageService := message.NewService(store, clk, secret, cfg.StorageTimeout)

	rollover := worker.NewDayRolloverWorker(treeService, hub, clk)
	rollover.Start()

	srv := server.NewServer(cfg, store, treeService, messageService, hub)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	select {
	case err = <-serverErr:
		if err != nil {
			slog.Error("Server stopped unexpectedly", "error", err)
		}
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), bootstrap.ShutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:            srv,
		TreeService:       treeService,
		DayRolloverWorker: rollover,
		SSEHub:            hub,
		Store:             store,
	})

	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
