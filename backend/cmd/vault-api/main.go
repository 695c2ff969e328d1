package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "time/tzdata" // archive_timezone must resolve in minimal images

	"github.com/itchan-dev/vault/backend/internal/router"
	"github.com/itchan-dev/vault/backend/internal/setup"
	"github.com/itchan-dev/vault/shared/config"
	"github.com/itchan-dev/vault/shared/logger"
)

const (
	readHeaderTimeout = 5 * time.Second
	idleTimeout       = 60 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	var configFolder string
	flag.StringVar(&configFolder, "config_folder", "backend/config", "path to folder with configs")
	flag.Parse()

	cfg := config.MustLoad(configFolder)
	logger.Initialize(cfg.Public.LogLevel, cfg.Public.LogJSON)

	deps, err := setup.SetupDependencies(cfg)
	if err != nil {
		logger.Log.Error("failed to initialize dependencies", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := deps.Cleanup(); err != nil {
			logger.Log.Error("failed to close archive", "error", err)
		}
	}()

	// No write timeout: a started listing runs to completion.
	server := &http.Server{
		Addr:              cfg.Public.ListenAddr,
		Handler:           router.New(deps),
		ReadHeaderTimeout: readHeaderTimeout,
		IdleTimeout:       idleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logger.Log.Info("server started", "addr", server.Addr, "driver", cfg.Public.Storage.Driver)
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("server failed", "error", err)
		}
		return
	case <-ctx.Done():
	}

	logger.Log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("graceful shutdown failed", "error", err)
	}
}
