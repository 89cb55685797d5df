package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Clark-Hu/movie-catalog/internal/config"
	httpserver "github.com/Clark-Hu/movie-catalog/internal/http"
	"github.com/Clark-Hu/movie-catalog/internal/repository"
	"github.com/Clark-Hu/movie-catalog/internal/store"
	"github.com/Clark-Hu/movie-catalog/internal/trending"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := log.NewWithOptions(os.Stdout, log.Options{
		Prefix:          "movie-catalog",
		ReportTimestamp: true,
	})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config error", "err", err)
	}
	logger.SetLevel(cfg.LogLevel)

	seeds, err := store.LoadSeeds(cfg.SeedFile)
	if err != nil {
		logger.Fatal("load seeds", "err", err)
	}
	st := store.New(store.Options{Logger: logger})
	st.Seed(seeds)

	var trendClient trending.Client
	if cfg.TrendingEnabled() {
		client, err := trending.NewHTTPClient(cfg.TrendingURL, cfg.TrendingAPIKey, time.Duration(cfg.TrendingTimeoutSecs)*time.Second, logger)
		if err != nil {
			logger.Fatal("init trending client", "err", err)
		}
		trendClient = client
		logger.Info("trending lookups enabled", "url", cfg.TrendingURL)
	}

	repo := repository.New(st)
	server, err := httpserver.New(cfg, st, repo, trendClient, logger)
	if err != nil {
		logger.Fatal("init http server", "err", err)
	}

	serverErrCh := make(chan error, 1)
	go func() {
		if err := server.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			serverErrCh <- err
			return
		}
		serverErrCh <- nil
	}()

	select {
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) && !errors.Is(err, context.Canceled) {
			logger.Error("server error", "err", err)
		}
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("graceful shutdown error", "err", err)
	}
}
