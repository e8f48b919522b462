package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"locallibrary/internal/author"
	"locallibrary/internal/book"
	"locallibrary/internal/bookinstance"
	"locallibrary/internal/config"
	"locallibrary/internal/genre"
	"locallibrary/internal/home"
	"locallibrary/internal/httpx"
	"locallibrary/internal/platform/metrics"
	"locallibrary/internal/store"
	"locallibrary/internal/view"
)

func newRouter(handle *store.Handle, cfg config.Config, logger *slog.Logger) http.Handler {
	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := handle.Ping(ctx); err != nil {
			http.Error(w, "store not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
	router.Handle("GET /metrics", metrics.Handler())
	router.Handle("GET /static/", view.Static())

	home.NewHTTPHandler(home.NewService(handle.Store, cfg.StoreTimeout)).Register(router)
	author.NewHTTPHandler(author.NewService(handle.Store, cfg.StoreTimeout)).Register(router)
	genre.NewHTTPHandler(genre.NewService(handle.Store, cfg.StoreTimeout)).Register(router)
	book.NewHTTPHandler(book.NewService(handle.Store, cfg.StoreTimeout)).Register(router)
	bookinstance.NewHTTPHandler(bookinstance.NewService(handle.Store, cfg.StoreTimeout)).Register(router)

	rateLimiter := httpx.NewRateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst, cfg.TrustProxy)

	return httpx.Chain(router,
		httpx.RequestIDMiddleware(logger),
		httpx.AccessLogMiddleware,
		httpx.RecoveryMiddleware,
		httpx.SecurityHeadersMiddleware(cfg.EnableHSTS),
		httpx.RequestSizeLimitMiddleware(cfg.MaxBodyBytes),
		rateLimiter.Middleware,
		metrics.Middleware,
	)
}
