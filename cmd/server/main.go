package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/garnizeh/careerguide/api"
	"github.com/garnizeh/careerguide/internal/config"
	"github.com/garnizeh/careerguide/internal/logging"
	"github.com/garnizeh/careerguide/internal/session"
	"github.com/garnizeh/careerguide/pkg/careerapi"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	var configPath string
	pflag.StringVarP(&configPath, "config", "c", "", "Path to config YAML file")
	pflag.Parse()

	// .env is optional; real environment variables win
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	logger := logging.Setup(cfg.Env, cfg.LogLevel)
	api.SetLogger(logger)
	careerapi.SetLogger(logger)
	session.SetLogger(logger)

	logger.Info("starting careerguide", slog.String("version", version), slog.String("build_time", buildTime))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := careerapi.NewDefaultClient(cfg.Backend)
	if err != nil {
		logger.Error("create backend client", slog.Any("err", err))
		os.Exit(1)
	}
	defer client.Close()

	renderer, err := api.NewRenderer()
	if err != nil {
		logger.Error("parse templates", slog.Any("err", err))
		os.Exit(1)
	}

	sessions := session.NewStore(cfg.Session, !cfg.IsDevelopment())
	sessions.Start(ctx)
	defer sessions.Stop()

	handler := api.SetupRoutes(cfg, version, buildTime, client, client, sessions, renderer)

	// Create HTTP server
	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.APITimeout,
		IdleTimeout:       60 * time.Second,
	}

	// Start server in a goroutine
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", slog.String("addr", cfg.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down server")
	case err := <-errCh:
		logger.Error("server failed", slog.Any("err", err))
	}

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", slog.Any("err", err))
	}

	logger.Info("server exited")
}
