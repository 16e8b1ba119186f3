// Package db embeds the goose SQL migrations for every supported dialect.
package db

import (
	"database/sql"
	"embed"
	"fmt"
	"path"
	"sync"

	"github.com/pressly/goose/v3"
)

const (
	DialectPostgres = "postgres"
	DialectSQLite3  = "sqlite3"
)

//go:embed migrations/postgres/*.sql migrations/sqlite3/*.sql
var Migrations embed.FS

// goose keeps its dialect and filesystem in package state.
var gooseMu sync.Mutex

// Dir returns the embedded migrations directory for dialect.
func Dir(dialect string) (string, error) {
	switch dialect {
	case DialectPostgres, DialectSQLite3:
		return path.Join("migrations", dialect), nil
	default:
		return "", fmt.Errorf("unsupported migration dialect %q", dialect)
	}
}

// Up applies all pending migrations for dialect.
func Up(sqlDB *sql.DB, dialect string) error {
	return run(sqlDB, dialect, goose.Up)
}

// Down rolls back the most recent migration for dialect.
func Down(sqlDB *sql.DB, dialect string) error {
	return run(sqlDB, dialect, goose.Down)
}

// Status prints the applied state of every migration for dialect.
func Status(sqlDB *sql.DB, dialect string) error {
	return run(sqlDB, dialect, goose.Status)
}

func run(sqlDB *sql.DB, dialect string, cmd func(*sql.DB, string, ...goose.OptionsFunc) error) error {
	dir, err := Dir(dialect)
	if err != nil {
		return err
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(Migrations)
	defer goose.SetBaseFS(nil)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := cmd(sqlDB, dir); err != nil {
		return fmt.Errorf("migrate %s: %w", dialect, err)
	}
	return nil
}
