package main

import (
	"fmt"
	"os"
	"path/filepath"

	"bookcrud/db"
	"bookcrud/internal/config"
)

// dialectFor maps a storage driver to its migration dialect.
func dialectFor(driver string) (string, error) {
	switch driver {
	case config.DriverPostgres:
		return db.DialectPostgres, nil
	case config.DriverSQLite:
		return db.DialectSQLite3, nil
	default:
		return "", fmt.Errorf("%w: driver %q has no migrations", config.ErrInvalidConfig, driver)
	}
}

// migrationsDir is where `create` writes new files. MIGRATIONS_DIR wins.
func migrationsDir(dialect string) string {
	if v := os.Getenv("MIGRATIONS_DIR"); v != "" {
		return v
	}
	return filepath.Join("db", "migrations", dialect)
}

// loadStorageConfig reads the service configuration and applies the
// command line overrides.
func loadStorageConfig(driver, dsn string) (config.StorageConfig, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.StorageConfig{}, err
	}
	if driver != "" {
		cfg.Storage.Driver = driver
	}
	if dsn != "" {
		cfg.Storage.DSN = dsn
	}
	if err := cfg.Validate(); err != nil {
		return config.StorageConfig{}, err
	}
	return cfg.Storage, nil
}
