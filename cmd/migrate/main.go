package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"

	"bookcrud/db"
	"bookcrud/internal/config"
	"bookcrud/internal/store"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

func main() {
	var (
		command = flag.String("command", "up", "Migration command: up, down, status, create")
		name    = flag.String("name", "", "Name for 'create' command")
		driver  = flag.String("driver", "", "Storage driver override: postgres, sqlite")
		dsn     = flag.String("dsn", "", "Storage DSN override")
	)
	flag.Parse()

	cfg, err := loadStorageConfig(*driver, *dsn)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	dialect, err := dialectFor(cfg.Driver)
	if err != nil {
		log.Fatal(err)
	}

	if *command == "create" {
		if *name == "" {
			log.Fatal("Name is required for 'create' command")
		}
		dir := migrationsDir(dialect)
		if err := goose.Create(nil, dir, *name, "sql"); err != nil {
			log.Fatalf("Failed to create migration: %v", err)
		}
		fmt.Printf("Migration created in %s: %s\n", dir, *name)
		return
	}

	sqlDB, closer, err := openSQL(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer closer()

	switch *command {
	case "up":
		if err := db.Up(sqlDB, dialect); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		fmt.Println("Migrations applied successfully")
	case "down":
		if err := db.Down(sqlDB, dialect); err != nil {
			log.Fatalf("Failed to rollback migrations: %v", err)
		}
		fmt.Println("Migrations rolled back successfully")
	case "status":
		if err := db.Status(sqlDB, dialect); err != nil {
			log.Fatalf("Failed to check migration status: %v", err)
		}
	default:
		log.Fatalf("Unknown command: %s. Use: up, down, status, create", *command)
	}
}

func openSQL(ctx context.Context, cfg config.StorageConfig) (*sql.DB, func(), error) {
	if cfg.Driver == config.DriverSQLite {
		sqlDB, err := store.OpenSQLite(cfg.DSN)
		if err != nil {
			return nil, nil, err
		}
		return sqlDB.DB, func() { _ = sqlDB.Close() }, nil
	}

	pool, err := pgxpool.New(ctx, cfg.DSN)
	if err != nil {
		return nil, nil, err
	}
	sqlDB := stdlib.OpenDBFromPool(pool)
	return sqlDB, func() {
		_ = sqlDB.Close()
		pool.Close()
	}, nil
}
