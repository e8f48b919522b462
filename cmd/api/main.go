package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"locallibrary/internal/config"
	"locallibrary/internal/platform/logging"
	"locallibrary/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	handle, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := handle.Close(closeCtx); err != nil {
			logger.Error("close store", slog.String("error", err.Error()))
		}
	}()

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      newRouter(handle, cfg, logger),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("addr", cfg.Addr), slog.String("store", handle.Driver))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

func openStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (*store.Handle, error) {
	openCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	handle, err := store.Open(openCtx, store.Config{
		Driver:        cfg.StoreDriver,
		MongoURI:      cfg.MongoURI,
		MongoDatabase: cfg.MongoDatabase,
		PostgresDSN:   cfg.DatabaseDSN,
		BadgerDir:     cfg.BadgerDir,
		Logger:        logger,
	})
	if err != nil {
		target := cfg.MongoURI
		if cfg.StoreDriver == store.DriverPostgres {
			target = cfg.DatabaseDSN
		}
		logger.Error("cannot open store",
			slog.String("driver", cfg.StoreDriver),
			slog.String("target", redactDSN(target)),
		)
		return nil, err
	}
	logger.Info("store connection OK", slog.String("driver", handle.Driver))
	return handle, nil
}

func redactDSN(dsn string) string {
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
