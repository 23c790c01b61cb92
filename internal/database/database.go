// Package database selects and opens the configured storage backend.
package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/seedling/internal/config"
	"github.com/osse101/seedling/internal/database/postgres"
	"github.com/osse101/seedling/internal/database/sqlite"
	"github.com/osse101/seedling/internal/repository"
)

// Store is everything the server needs from a backend
type Store interface {
	repository.Tree
	repository.Message
	Ping(ctx context.Context) error
	SchemaVersion(ctx context.Context) (int64, error)
	Close() error
}

var (
	_ Store = (*sqlite.Store)(nil)
	_ Store = (*postgres.Store)(nil)
)

// Open connects to the backend named by cfg.DBDriver, migrates it and
// makes sure the singleton tree row exists
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.DBDriver {
	case config.DriverSQLite:
		s, err := sqlite.Open(ctx, cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		slog.Info("Storage ready", "driver", cfg.DBDriver, "path", cfg.DBPath)
		return s, nil

	case config.DriverPostgres:
		s, err := postgres.Open(ctx, cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres store: %w", err)
		}
		slog.Info("Storage ready", "driver", cfg.DBDriver, "host", cfg.DBHost, "database", cfg.DBName)
		return s, nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}
}
