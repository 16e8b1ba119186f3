package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bookcrud/internal/config"
	"bookcrud/internal/httpx"
	"bookcrud/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type unreadyStore struct {
	*store.BookMemory
}

func (unreadyStore) Ping(context.Context) error {
	return errors.New("connection refused")
}

func newTestRouter(s store.Backend, rl *httpx.RateLimitMiddleware) http.Handler {
	return newRouter(config.Default().Server, s, zap.NewNop(), rl)
}

func TestRouter_Probes(t *testing.T) {
	t.Run("healthz", func(t *testing.T) {
		w := httptest.NewRecorder()
		newTestRouter(store.NewBookMemory(), nil).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ok", w.Body.String())
	})

	t.Run("readyz ready", func(t *testing.T) {
		w := httptest.NewRecorder()
		newTestRouter(store.NewBookMemory(), nil).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ready", w.Body.String())
	})

	t.Run("readyz not ready", func(t *testing.T) {
		w := httptest.NewRecorder()
		newTestRouter(unreadyStore{store.NewBookMemory()}, nil).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestRouter_BookRoutesThroughMiddleware(t *testing.T) {
	router := newTestRouter(store.NewBookMemory(), nil)

	req := httptest.NewRequest(http.MethodPost, "/books", strings.NewReader(`{"title":"Dune","description":"Sci-fi classic"}`))
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("X-Request-Id", "req-1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "/books/1", w.Header().Get("Location"))
	assert.Equal(t, "req-1", w.Header().Get("X-Request-Id"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.JSONEq(t, `{"id":1,"title":"Dune","description":"Sci-fi classic"}`, w.Body.String())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/books/1", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1,"title":"Dune","description":"Sci-fi classic"}`, w.Body.String())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/books/2", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
}

func TestRouter_BodyLimit(t *testing.T) {
	cfg := config.Default().Server
	cfg.MaxBodyBytes = 16
	router := newRouter(cfg, store.NewBookMemory(), zap.NewNop(), nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/books",
		strings.NewReader(`{"title":"A very long title","description":""}`)))

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestRouter_RateLimit(t *testing.T) {
	router := newTestRouter(store.NewBookMemory(), httpx.NewRateLimitMiddleware(1, 1))

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/books", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests}, codes)
}
