package main

import (
	"ShareAMeal/internal/bootstrap"
	"ShareAMeal/internal/config"
	"ShareAMeal/internal/handlers"
	"ShareAMeal/internal/middleware"
	"ShareAMeal/internal/notify"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	//context
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	donations, closeStore, err := bootstrap.NewService(ctx, cfg, sugar, notify.Log{Logger: sugar})
	if err != nil {
		sugar.Fatalw("failed to open donation store", "error", err)
	}
	defer func() {
		if err := closeStore(); err != nil {
			sugar.Errorw("failed to close donation store", "error", err)
		}
	}()

	h := handlers.NewHandler(donations, sugar, cfg)

	addr := cfg.BaseURL

	sugar.Infow(
		"Starting server",
		"addr", addr,
	)

	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"StoreBackend", cfg.StoreBackend,
		"StorePath", cfg.StorePath,
		"StoreKey", cfg.StoreKey,
		"PasswordMode", cfg.PasswordMode,
		"State", donations.State().String(),
	)

	srv := &http.Server{Addr: addr, Handler: h.Router}
	go func() {
		<-ctx.Done()
		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		sugar.Errorw("Server failed", "error", err)
	}
}
