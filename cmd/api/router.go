package main

import (
	"context"
	"net/http"
	"time"

	"bookcrud/internal/book"
	"bookcrud/internal/config"
	"bookcrud/internal/httpx"
	"bookcrud/internal/store"

	"go.uber.org/zap"
)

// newRouter mounts the book routes and probes and wraps them in the
// middleware stack. rateLimiter may be nil.
func newRouter(cfg config.ServerConfig, books store.Backend, logger *zap.Logger, rateLimiter *httpx.RateLimitMiddleware) http.Handler {
	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := books.Ping(ctx); err != nil {
			httpx.RequestLogger(logger, r).Warn("readiness check failed", zap.Error(err))
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	book.NewHTTPHandler(books, logger).Register(router)

	middlewares := []httpx.Middleware{
		httpx.RecoveryMiddleware(logger),
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware(logger),
		httpx.SecurityHeadersMiddleware,
		httpx.CORSMiddleware(cfg.CORSOrigins),
	}
	if rateLimiter != nil {
		middlewares = append(middlewares, rateLimiter.Middleware)
	}
	middlewares = append(middlewares, httpx.RequestSizeLimitMiddleware(cfg.MaxBodyBytes))

	return httpx.Chain(router, middlewares...)
}
