package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"bookcrud/internal/config"
	"bookcrud/internal/httpx"
	"bookcrud/internal/platform/logging"
	"bookcrud/internal/store"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type App struct {
	logger      *zap.Logger
	config      config.Config
	server      *http.Server
	rateLimiter *httpx.RateLimitMiddleware
	cleanups    []func()
}

// NewApp loads the configuration, opens storage and builds the server.
func NewApp() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger, flusher := logging.New(cfg.IsProduction(), cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	books, closer, err := store.Open(ctx, cfg.Storage, logger)
	if err != nil {
		flusher()
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	var rateLimiter *httpx.RateLimitMiddleware
	if cfg.Server.RateLimitRPS > 0 {
		rateLimiter = httpx.NewRateLimitMiddleware(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst)
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      newRouter(cfg.Server, books, logger, rateLimiter),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &App{
		logger:      logger,
		config:      cfg,
		server:      srv,
		rateLimiter: rateLimiter,
		cleanups:    []func(){closer, flusher},
	}, nil
}

// Run serves until SIGINT or SIGTERM, then shuts the server down.
func (app *App) Run() error {
	defer app.Clean()
	nCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(nCtx)

	g.Go(app.Serve())
	g.Go(app.Stop(nCtx, gCtx))
	if app.rateLimiter != nil {
		g.Go(func() error {
			app.rateLimiter.Cleanup(gCtx.Done())
			return nil
		})
	}

	err := g.Wait()
	app.logger.Info("api server stopped", zap.String("addr", app.config.Server.Addr), zap.Error(err))
	return err
}

// Clean calls all registered cleanups functions.
func (app *App) Clean() {
	for _, f := range app.cleanups {
		f()
	}
}

// Serve starts the api server. Its error ends the group.
func (app *App) Serve() func() error {
	return func() error {
		app.logger.Info("api server starting",
			zap.String("addr", app.config.Server.Addr),
			zap.String("storage.driver", app.config.Storage.Driver),
		)
		err := app.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		return err
	}
}

// Stop waits for the group context and shuts the server down, forcing a
// close when the graceful shutdown does not finish in time. It always
// returns nil so only Serve decides the group error.
func (app *App) Stop(nCtx, gCtx context.Context) func() error {
	return func() error {
		<-gCtx.Done()

		if nCtx.Err() != nil {
			app.logger.Info("api server stopping. reason: requested to stop")
		} else {
			app.logger.Info("api server stopping. reason: errored at running")
		}

		sCtx, cancel := context.WithTimeout(context.Background(), app.config.Server.ShutdownTimeout)
		defer cancel()
		err := app.server.Shutdown(sCtx)
		switch {
		case err == nil, errors.Is(err, http.ErrServerClosed):
			app.logger.Info("api server graceful shutdown succeeded")
		case errors.Is(err, context.DeadlineExceeded):
			app.logger.Warn("api server graceful shutdown timed out")
		default:
			app.logger.Warn("api server graceful shutdown failed", zap.Error(err))
		}

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.Warn("api server going to force shutdown", zap.Error(app.server.Close()))
		}
		return nil
	}
}
