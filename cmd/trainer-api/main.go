// Package main Trainer Memberships API
//
// @title           Trainer Memberships API
// @version         1.0
// @description     API для учёта клиентов и абонементов фитнес-тренера

// @contact.name   API Support
// @contact.email  support@trainer-memberships.local

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	trainerapi "github.com/magabrotheeeer/trainer-memberships/internal/app/trainer-api"
	"github.com/magabrotheeeer/trainer-memberships/internal/config"
	"github.com/magabrotheeeer/trainer-memberships/internal/lib/sl"

	_ "github.com/magabrotheeeer/trainer-memberships/docs"
)

func main() {
	cfg := config.MustLoad()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	logger.Info("starting trainer-api", slog.String("env", cfg.Env))
	logger.Debug("config loaded", slog.String("config", cfg.String()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := trainerapi.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize app", sl.Err(err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("app stopped with error", sl.Err(err))
		os.Exit(1)
	}

	logger.Info("trainer-api stopped gracefully")
}
