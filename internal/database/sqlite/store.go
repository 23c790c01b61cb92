// Package sqlite stores the seedling and the message board in a single SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/osse101/seedling/internal/database/migrations"
	"github.com/osse101/seedling/internal/domain"
)

// DriverName is the database/sql driver registered by modernc.org/sqlite
const DriverName = "sqlite"

// dsnPragmas wait on a locked file instead of failing immediately
const dsnPragmas = "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"

// Store implements repository.Tree and repository.Message on SQLite
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database file at path and applies migrations
func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open(DriverName, "file:"+path+dsnPragmas)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// one writer at a time keeps SQLite from returning SQLITE_BUSY under load
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := migrations.Up(ctx, db, migrations.DialectSQLite); err != nil {
		db.Close()
		return nil, err
	}

	s := &Store{db: db}
	if err := s.EnsureTreeState(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// DB exposes the handle for migrations and tooling
func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// SchemaVersion returns the applied goose migration version
func (s *Store) SchemaVersion(ctx context.Context) (int64, error) {
	return migrations.Version(ctx, s.db, migrations.DialectSQLite)
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) EnsureTreeState(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO tree_state (id) VALUES (1) ON CONFLICT (id) DO NOTHING`)
	if err != nil {
		return fmt.Errorf("failed to ensure tree state: %w", err)
	}
	return nil
}

func (s *Store) GetTreeState(ctx context.Context) (*domain.TreeState, error) {
	var (
		st          domain.TreeState
		lastWatered sql.NullString
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT watered_count, last_watered, harvest_count, ready_for_harvest
		FROM tree_state WHERE id = 1
	`).Scan(&st.WateredCount, &lastWatered, &st.HarvestCount, &st.ReadyForHarvest)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tree state: %w", err)
	}

	if lastWatered.Valid && lastWatered.String != "" {
		day, err := domain.ParseDay(lastWatered.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse last_watered: %w", err)
		}
		st.LastWatered = &day
	}

	return &st, nil
}

func (s *Store) RecordWatering(ctx context.Context, wateredCount int, day domain.Day, ready bool) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE tree_state
		SET watered_count = ?, last_watered = ?, ready_for_harvest = ?
		WHERE id = 1
	`, wateredCount, day.String(), ready)
	if err != nil {
		return fmt.Errorf("failed to record watering: %w", err)
	}
	return nil
}

func (s *Store) RecordHarvest(ctx context.Context, harvestCount int) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE tree_state
		SET watered_count = 0, last_watered = NULL, ready_for_harvest = 0, harvest_count = ?
		WHERE id = 1
	`, harvestCount)
	if err != nil {
		return fmt.Errorf("failed to record harvest: %w", err)
	}
	return nil
}

func (s *Store) ResetTreeState(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tree_state (id, watered_count, last_watered, harvest_count, ready_for_harvest)
		VALUES (1, 0, NULL, 0, 0)
		ON CONFLICT (id) DO UPDATE SET
			watered_count = 0, last_watered = NULL, harvest_count = 0, ready_for_harvest = 0
	`)
	if err != nil {
		return fmt.Errorf("failed to reset tree state: %w", err)
	}
	return nil
}

func (s *Store) ListMessages(ctx context.Context) ([]domain.Message, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, text, time FROM messages ORDER BY time ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	msgs := make([]domain.Message, 0)
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.Name, &m.Text, &m.Time); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate messages: %w", err)
	}
	return msgs, nil
}

func (s *Store) InsertMessage(ctx context.Context, msg *domain.Message) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (name, text, time) VALUES (?, ?, ?)`,
		msg.Name, msg.Text, msg.Time)
	if err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read message id: %w", err)
	}
	msg.ID = id
	return nil
}

func (s *Store) DeleteMessage(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM messages WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}
	return nil
}

func (s *Store) DeleteAllMessages(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM messages`); err != nil {
		return fmt.Errorf("failed to delete messages: %w", err)
	}
	return nil
}
