package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bookcrud/db"
	"bookcrud/internal/book"
	"bookcrud/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
)

// Backend is a book.Store that can report readiness.
type Backend interface {
	book.Store
	Ping(ctx context.Context) error
}

// Open opens the configured driver and returns the store with a func
// releasing its resources.
func Open(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (Backend, func(), error) {
	switch cfg.Driver {
	case config.DriverMemory:
		logger.Warn("using in-memory storage, books are lost on restart")
		return NewBookMemory(), func() {}, nil
	case config.DriverSQLite:
		return openSQLite(ctx, cfg, logger)
	case config.DriverPostgres:
		return openPostgres(ctx, cfg, logger)
	default:
		return nil, nil, fmt.Errorf("%w: unknown storage driver %q", config.ErrInvalidConfig, cfg.Driver)
	}
}

func openSQLite(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (Backend, func(), error) {
	sqlDB, err := OpenSQLite(cfg.DSN)
	if err != nil {
		return nil, nil, err
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, nil, fmt.Errorf("cannot ping sqlite (%s): %w", cfg.DSN, err)
	}
	if cfg.AutoMigrate {
		if err := db.Up(sqlDB.DB, db.DialectSQLite3); err != nil {
			sqlDB.Close()
			return nil, nil, err
		}
		logger.Info("database migrated", zap.String("dialect", db.DialectSQLite3))
	}
	logger.Info("database connection OK", zap.String("storage.driver", cfg.Driver))

	closer := func() {
		if err := sqlDB.Close(); err != nil {
			logger.Warn("failed to close sqlite", zap.Error(err))
		}
	}
	return NewBookSQLite(sqlDB), closer, nil
}

func openPostgres(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (Backend, func(), error) {
	pool, err := pgxpool.New(ctx, cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot create db pool: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("cannot ping database (%s): %w", RedactDSN(cfg.DSN), err)
	}
	if cfg.AutoMigrate {
		sqlDB := stdlib.OpenDBFromPool(pool)
		err := db.Up(sqlDB, db.DialectPostgres)
		sqlDB.Close()
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		logger.Info("database migrated", zap.String("dialect", db.DialectPostgres))
	}
	logger.Info("database connection OK",
		zap.String("storage.driver", cfg.Driver),
		zap.String("dsn", RedactDSN(cfg.DSN)),
	)
	return NewBookPG(pool, cfg.QueryTimeout), pool.Close, nil
}

// RedactDSN hides the credentials of a URL-style DSN.
func RedactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.Index(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
}
