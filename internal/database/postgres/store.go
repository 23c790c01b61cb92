// Package postgres stores the seedling and the message board in PostgreSQL via pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/osse101/seedling/internal/database/migrations"
	"github.com/osse101/seedling/internal/domain"
)

// Store implements repository.Tree and repository.Message on a pgx pool
type Store struct {
	pool *pgxpool.Pool
}

// NewStore wraps an existing pool. It does not run migrations.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Open connects, applies migrations and makes sure the singleton row exists
func Open(ctx context.Context, connString string, maxConns int, maxIdle, maxLife time.Duration) (*Store, error) {
	pool, err := NewPool(ctx, connString, maxConns, maxIdle, maxLife)
	if err != nil {
		return nil, err
	}

	if err := Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	s := NewStore(pool)
	if err := s.EnsureTreeState(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// Migrate runs the embedded goose migrations through a database/sql view of the pool
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()
	return migrations.Up(ctx, db, migrations.DialectPostgres)
}

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// SchemaVersion returns the applied goose migration version
func (s *Store) SchemaVersion(ctx context.Context) (int64, error) {
	db := stdlib.OpenDBFromPool(s.pool)
	defer db.Close()
	return migrations.Version(ctx, db, migrations.DialectPostgres)
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

func (s *Store) EnsureTreeState(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `INSERT INTO tree_state (id) VALUES (1) ON CONFLICT (id) DO NOTHING`)
	if err != nil {
		return fmt.Errorf("failed to ensure tree state: %w", err)
	}
	return nil
}

func (s *Store) GetTreeState(ctx context.Context) (*domain.TreeState, error) {
	var (
		st          domain.TreeState
		lastWatered *time.Time
	)

	err := s.pool.QueryRow(ctx, `
		SELECT watered_count, last_watered, harvest_count, ready_for_harvest
		FROM tree_state WHERE id = 1
	`).Scan(&st.WateredCount, &lastWatered, &st.HarvestCount, &st.ReadyForHarvest)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tree state: %w", err)
	}

	if lastWatered != nil {
		day := domain.DayOf(*lastWatered)
		st.LastWatered = &day
	}
	return &st, nil
}

func (s *Store) RecordWatering(ctx context.Context, wateredCount int, day domain.Day, ready bool) error {
	t, err := day.Time()
	if err != nil {
		return fmt.Errorf("failed to record watering: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		UPDATE tree_state
		SET watered_count = $1, last_watered = $2, ready_for_harvest = $3
		WHERE id = 1
	`, wateredCount, t, ready)
	if err != nil {
		return fmt.Errorf("failed to record watering: %w", err)
	}
	return nil
}

func (s *Store) RecordHarvest(ctx context.Context, harvestCount int) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE tree_state
		SET watered_count = 0, last_watered = NULL, ready_for_harvest = FALSE, harvest_count = $1
		WHERE id = 1
	`, harvestCount)
	if err != nil {
		return fmt.Errorf("failed to record harvest: %w", err)
	}
	return nil
}

func (s *Store) ResetTreeState(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO tree_state (id, watered_count, last_watered, harvest_count, ready_for_harvest)
		VALUES (1, 0, NULL, 0, FALSE)
		ON CONFLICT (id) DO UPDATE SET
			watered_count = 0, last_watered = NULL, harvest_count = 0, ready_for_harvest = FALSE
	`)
	if err != nil {
		return fmt.Errorf("failed to reset tree state: %w", err)
	}
	return nil
}

func (s *Store) ListMessages(ctx context.Context) ([]domain.Message, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, name, text, time FROM messages ORDER BY time ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	msgs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Message, error) {
		var m domain.Message
		err := row.Scan(&m.ID, &m.Name, &m.Text, &m.Time)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan messages: %w", err)
	}
	if msgs == nil {
		msgs = make([]domain.Message, 0)
	}
	return msgs, nil
}

func (s *Store) InsertMessage(ctx context.Context, msg *domain.Message) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO messages (name, text, time) VALUES ($1, $2, $3) RETURNING id`,
		msg.Name, msg.Text, msg.Time,
	).Scan(&msg.ID)
	if err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}
	return nil
}

func (s *Store) DeleteMessage(ctx context.Context, id int64) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM messages WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}
	return nil
}

func (s *Store) DeleteAllMessages(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM messages`); err != nil {
		return fmt.Errorf("failed to delete messages: %w", err)
	}
	return nil
}
