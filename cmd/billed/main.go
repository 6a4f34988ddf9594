// Package main запускает HTTP-сервер сервиса учёта расходов.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mmeshcher/billed/internal/config"
	"github.com/mmeshcher/billed/internal/handler"
	"github.com/mmeshcher/billed/internal/metrics"
	"github.com/mmeshcher/billed/internal/middleware"
	"github.com/mmeshcher/billed/internal/service"
	"github.com/mmeshcher/billed/internal/session"
	"github.com/mmeshcher/billed/internal/ui"
)

const demoTokenTTL = 24 * time.Hour

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	sugar := logger.Sugar()

	cfg, err := config.Parse()
	if err != nil {
		sugar.Fatalw("configuration error", "error", err.Error())
	}

	metrics.Init(prometheus.DefaultRegisterer)

	svc, err := service.Open(service.Settings{
		BillsAPIAddress: cfg.BillsAPIAddress,
		BillsAPITimeout: cfg.BillsAPITimeout,
		DatabaseURI:     cfg.DatabaseURI,
	})
	if err != nil {
		sugar.Fatalw("bills source initialization error", "error", err.Error())
	}
	defer svc.Close()

	renderer, err := ui.NewRenderer()
	if err != nil {
		sugar.Fatalw("templates initialization error", "error", err.Error())
	}

	authMiddleware := middleware.NewAuthMiddleware(cfg.SessionSecret)

	if svc.Kind() == service.SourceMemory {
		token, err := authMiddleware.Codec().Issue(session.User{Type: session.TypeEmployee, Email: "a@a"}, demoTokenTTL)
		if err != nil {
			sugar.Fatalw("demo session error", "error", err.Error())
		}
		sugar.Infow("demo bills loaded, use this session cookie",
			"cookie", middleware.SessionCookieName, "token", token)
	}

	h := handler.NewHandler(svc, renderer, logger, authMiddleware, handler.Settings{
		Locale:     cfg.Locale,
		ModalWidth: cfg.ModalWidth,
	})

	r := h.SetupRouter()

	server := &http.Server{
		Addr:    cfg.RunAddress,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		sugar.Infow("starting billed server", "addr", cfg.RunAddress, "source", svc.Kind(), "locale", cfg.Locale)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown при отмене контекста (сигнал или ошибка в другой горутине)
	g.Go(func() error {
		<-ctx.Done()
		sugar.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		sugar.Info("server stopped gracefully")
		return nil
	})

	if err := g.Wait(); err != nil {
		sugar.Fatalw("application terminated with error", "error", err)
	}
}
