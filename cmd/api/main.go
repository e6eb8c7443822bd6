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

	_ "github.com/lib/pq"

	"github.com/taskboard/taskboard-api/internal/config"
	"github.com/taskboard/taskboard-api/internal/githuboauth"
	apihttp "github.com/taskboard/taskboard-api/internal/http"
	"github.com/taskboard/taskboard-api/internal/http/handler"
	"github.com/taskboard/taskboard-api/internal/middleware"
	"github.com/taskboard/taskboard-api/internal/repository"
	"github.com/taskboard/taskboard-api/internal/service"
)

func main() {
	// Initial logger at info level; reconfigured after config load
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(context.Background()); err != nil {
		logger.Error("application failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.ParseLogLevel(),
	}))
	slog.SetDefault(logger)

	logger.Info("config loaded",
		"env", cfg.AppEnv,
		"port", cfg.ServerPort,
		"auth_dev_mode", cfg.AuthDevMode,
		"log_level", cfg.LogLevel,
	)

	// Database connection
	db, err := repository.NewDB(cfg.DB.DSN())
	if err != nil {
		return err
	}
	defer db.Close()
	logger.Info("database connected")

	// Repositories and services
	taskRepo := repository.NewPostgresTask(db)
	taskSvc := service.NewTaskService(taskRepo)

	// GitHub OAuth login flow
	var authHandler *handler.AuthHandler
	if cfg.GitHub.ClientID != "" {
		provider := githuboauth.NewHTTPClient(
			cfg.GitHub.ClientID,
			cfg.GitHub.ClientSecret,
			cfg.GitHub.RedirectURL,
		)
		authSvc := service.NewAuthService(provider, []byte(cfg.Session.Secret), cfg.Session.TTL)
		authHandler = handler.NewAuthHandler(authSvc, cfg.Session.SecureCookies, cfg.Session.TTL)
		logger.Info("github oauth client initialized")
	} else {
		logger.Warn("github oauth not configured: GITHUB_CLIENT_ID not set")
	}

	// Session auth middleware
	auth, err := middleware.NewAuth(middleware.AuthConfig{
		DevMode:       cfg.AuthDevMode,
		SessionSecret: []byte(cfg.Session.Secret),
	})
	if err != nil {
		return err
	}

	// HTTP Server
	srv := apihttp.NewServer(cfg.ServerPort, logger, taskSvc, authHandler, auth)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	logger.Info("server starting", "port", cfg.ServerPort)

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("server stopped gracefully")
	return nil
}
