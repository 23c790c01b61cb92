// Package migrations embeds the schema for both storage backends and applies it with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS

// Dialect names the schema directory and the goose dialect to use
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

func (d Dialect) gooseDialect() string {
	if d == DialectSQLite {
		return "sqlite3"
	}
	return "postgres"
}

// goose keeps dialect and base FS in package globals
var gooseMu sync.Mutex

// Up applies every pending migration for the dialect
func Up(ctx context.Context, db *sql.DB, dialect Dialect) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(FS)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(dialect.gooseDialect()); err != nil {
		return fmt.Errorf("failed to set migration dialect %s: %w", dialect, err)
	}

	if err := goose.UpContext(ctx, db, string(dialect)); err != nil {
		return fmt.Errorf("failed to apply %s migrations: %w", dialect, err)
	}
	return nil
}

// Version returns the highest applied migration for the dialect
func Version(ctx context.Context, db *sql.DB, dialect Dialect) (int64, error) {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	if err := goose.SetDialect(dialect.gooseDialect()); err != nil {
		return 0, err
	}
	return goose.GetDBVersionContext(ctx, db)
}
