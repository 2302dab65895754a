package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/zhouzirui/video-catalog/backend/internal/config"
	"github.com/zhouzirui/video-catalog/backend/internal/handler"
	"github.com/zhouzirui/video-catalog/backend/internal/logging"
	"github.com/zhouzirui/video-catalog/backend/internal/middleware"
	"github.com/zhouzirui/video-catalog/backend/internal/model/lookup"
	"github.com/zhouzirui/video-catalog/backend/internal/repository"
	"github.com/zhouzirui/video-catalog/backend/internal/service/events"
	videoservice "github.com/zhouzirui/video-catalog/backend/internal/service/video"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	slog.SetDefault(logging.New(level))

	if envErr != nil {
		slog.Warn("failed to load .env file, continuing with system environment variables only", "err", envErr)
	}

	openCtx, cancel := context.WithTimeout(ctx, cfg.Store.OpTimeout())
	repo, err := repository.Open(openCtx, cfg.Store)
	cancel()
	if err != nil {
		return err
	}
	defer func() {
		if err := repo.Close(); err != nil {
			slog.Warn("failed to close store", "err", err)
		}
	}()

	hub := events.NewHub(32)
	videoSvc := videoservice.NewService(repo, hub, cfg.Store.OpTimeout())

	var limiter *middleware.Limiter
	if cfg.RateLimit.Enabled() {
		limiter = middleware.NewLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		defer limiter.Close()
		slog.Info("rate limiting enabled", "rps", cfg.RateLimit.RPS, "burst", cfg.RateLimit.Burst)
	}

	router := handler.NewRouter(handler.Deps{
		Server:  cfg.Server,
		Videos:  videoSvc,
		People:  lookup.NewDirectory(lookup.Seed()),
		Hub:     hub,
		Limiter: limiter,
	})

	return startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) error {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	slog.Info("video catalog listening", "addr", addr)
	return runServer(ctx, srv)
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
