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

	"github.com/begamot/pethosting/config"
	"github.com/begamot/pethosting/internal/memstore"
	"github.com/begamot/pethosting/internal/security"
	"github.com/begamot/pethosting/internal/service"
	httpx "github.com/begamot/pethosting/internal/transport/http"
	"github.com/begamot/pethosting/internal/transport/ws"
	"github.com/begamot/pethosting/pkg/logger"
)

func main() {
	// --- config ---
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger.Init(logger.Config{
		Env:       logger.Env(cfg.Logging.Env),
		Service:   cfg.Logging.Service,
		Version:   cfg.Logging.Version,
		Backend:   logger.Backend(cfg.Logging.Backend),
		AddSource: cfg.Logging.AddSource,
		Debug:     cfg.Logging.Debug,
	})
	slog.Info("starting pethosting backend",
		"env", cfg.Logging.Env, "version", cfg.Logging.Version)

	// --- stores (in-memory, живут до рестарта процесса) ---
	messageRepo := memstore.NewMessageRepository()
	reviewRepo := memstore.NewReviewRepository()
	userRepo := memstore.NewUserRepository()

	// --- WS Hub ---
	hub := ws.NewHub()

	// --- services ---
	chatSvc := service.NewChatService(messageRepo, hub)
	chatSvc.SetMaxContentLen(cfg.Chat.MaxContentLen)
	reviewSvc := service.NewReviewService(reviewRepo, userRepo)
	userSvc := service.NewUserService(userRepo, &security.BcryptConfig{
		Cost:      cfg.Security.BcryptCost,
		MinLength: cfg.Security.PasswordMinLength,
	})

	// --- WS Server ---
	wsServer := ws.NewServer(hub, chatSvc)

	// --- HTTP ---
	handler := httpx.NewHandler(chatSvc, reviewSvc, userSvc)
	handler.SetHistoryLimit(cfg.Chat.HistoryLimit)
	router := httpx.NewRouter(handler, wsServer)
	httpSrv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http listen", "addr", cfg.HTTP.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// --- graceful shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("shutdown signal", "sig", sig)
	case err := <-errCh:
		slog.Error("server error", "err", err)
	}

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = httpSrv.Shutdown(ctxShutdown)
	slog.Info("stopped")
}
