package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/seedling/internal/domain"
)

// One row and a short message table; a single warm connection is plenty
const minConns = 1

// NewPool opens a pgx pool and pings it. maxConns <= 0 keeps the pgx default.
func NewPool(ctx context.Context, connString string, maxConns int, maxIdle, maxLife time.Duration) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("%w: parse connection string: %v", domain.ErrInvalidInput, err)
	}

	if maxConns > 0 {
		cfg.MaxConns = int32(min(maxConns, math.MaxInt32))
	}
	cfg.MinConns = minConns
	if maxLife > 0 {
		cfg.MaxConnLifetime = maxLife
	}
	if maxIdle > 0 {
		cfg.MaxConnIdleTime = maxIdle
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: create pool: %v", domain.ErrStorage, err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: ping: %v", domain.ErrStorage, err)
	}

	slog.Info("Connected to postgres", "max_conns", cfg.MaxConns, "max_conn_lifetime", cfg.MaxConnLifetime)
	return pool, nil
}
