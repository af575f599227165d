package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"

	"studentportal/internal/apiclient"
	"studentportal/internal/config"
	"studentportal/internal/logger"
	"studentportal/internal/ui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("Could not load configuration: %v", err)
	}
	logger.Init(cfg)

	api, err := apiclient.New(cfg.APIBaseURL)
	if err != nil {
		logger.Log.Fatalf("Could not create API client: %v", err)
	}

	registry := ui.NewRegistry(cfg.ViewTTL)
	if err := registry.Start("@every 1m"); err != nil {
		logger.Log.Fatalf("Could not schedule view sweep: %v", err)
	}
	defer registry.Stop()

	var h http.Handler = ui.NewRouter(ui.NewHandler(api, registry))
	h = handlers.LoggingHandler(logger.Log.Writer(), h)
	h = handlers.RecoveryHandler(handlers.RecoveryLogger(logger.Log), handlers.PrintRecoveryStack(true))(h)

	srv := &http.Server{Addr: cfg.PortalAddr, Handler: h}

	go func() {
		logger.Log.Infof("Student portal running on %s (API %s)", cfg.PortalAddr, cfg.APIBaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatalf("Portal server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down portal...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Errorf("Graceful shutdown failed: %v", err)
	}
}
