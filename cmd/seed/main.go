package main

import (
	"context"
	"flag"
	"log"

	"bookcrud/internal/config"
	"bookcrud/internal/platform/logging"
	"bookcrud/internal/store"

	"go.uber.org/zap"
)

func main() {
	count := flag.Int("count", 100, "Number of books to create")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger, flusher := logging.New(cfg.IsProduction(), cfg.LogLevel)
	defer flusher()

	ctx := context.Background()
	books, closer, err := store.Open(ctx, cfg.Storage, logger)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer closer()

	logger.Info("generating books", zap.Int("count", *count))
	created, err := seed(ctx, books, newGenerator(), *count, logger)
	if err != nil {
		logger.Error("seeding stopped", zap.Int("created", created), zap.Error(err))
		return
	}
	logger.Info("seeding finished", zap.Int("created", created))
}
