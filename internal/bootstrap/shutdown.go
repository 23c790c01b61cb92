package bootstrap

import (
	"context"
	"io"
	"log/slog"

	"github.com/osse101/seedling/internal/server"
	"github.com/osse101/seedling/internal/sse"
	"github.com/osse101/seedling/internal/tree"
	"github.com/osse101/seedling/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server            *server.Server
	TreeService       tree.Service
	DayRolloverWorker *worker.DayRolloverWorker
	SSEHub            *sse.Hub
	Store             io.Closer
}

// GracefulShutdown stops components in order:
// 1. HTTP server (stop accepting new requests)
// 2. Worker timers
// 3. Services (in-flight notifications)
// 4. SSE hub, then the store
//
// Errors are logged but do not stop the sequence. Nil components are skipped.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if c.Server != nil {
		if err := c.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if c.DayRolloverWorker != nil {
		if err := c.DayRolloverWorker.Shutdown(ctx); err != nil {
			slog.Error(LogMsgWorkerShutdownFailed, "error", err)
		}
	}

	if c.TreeService != nil {
		shutdownService(ctx, ServiceNameTree, c.TreeService)
	}

	if c.SSEHub != nil {
		c.SSEHub.Stop()
	}

	if c.Store != nil {
		if err := c.Store.Close(); err != nil {
			slog.Error(LogMsgStoreCloseFailed, "error", err)
		}
	}

	slog.Info(LogMsgServerStopped)
}

type shutdownableService interface {
	Shutdown(context.Context) error
}

func shutdownService(ctx context.Context, name string, service shutdownableService) {
	if err := service.Shutdown(ctx); err != nil {
		slog.Error(name+LogMsgServiceShutdownFailed, "error", err)
	}
}
