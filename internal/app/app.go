package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"pdf2word/internal/config"
	"pdf2word/internal/engine"
	conversion_h "pdf2word/internal/http-server/handler/conversion"
	service_h "pdf2word/internal/http-server/handler/service"
	"pdf2word/internal/http-server/router"
	conversion_uc "pdf2word/internal/usecase/conversion"
	"pdf2word/internal/workspace"

	"github.com/wb-go/wbf/zlog"
)

type App struct {
	cfg      *config.Config
	server   *http.Server
	logger   *zlog.Zerolog
	registry *workspace.Registry
}

// NewConversion builds the conversion pipeline shared by the HTTP service and
// the one-shot CLI.
func NewConversion(cfg *config.Config, logger *zlog.Zerolog) (*conversion_uc.ConversionUsecase, *workspace.Registry, error) {
	registry := workspace.NewRegistry(cfg.ScratchRoot(), logger)

	eng, err := engine.New(cfg.Conversion, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create conversion engine: %w", err)
	}

	return conversion_uc.NewConversionUsecase(eng, registry, logger), registry, nil
}

func NewApp(cfg *config.Config, logger *zlog.Zerolog) (*App, error) {
	conversionUsecase, registry, err := NewConversion(cfg, logger)
	if err != nil {
		return nil, err
	}

	if _, err := registry.Sweep(cfg.Conversion.StaleAfter); err != nil {
		logger.Warn().Err(err).Str("root", registry.Root()).Msg("Failed to sweep scratch root")
	}

	h := &router.Handler{
		ConversionHandler: conversion_h.NewConversionHandler(conversionUsecase, logger),
		ServiceHandler:    service_h.NewServiceHandler(logger),
	}

	server := &http.Server{
		Addr:         cfg.ListenAddr(),
		Handler:      router.SetupRouter(h),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &App{
		cfg:      cfg,
		server:   server,
		logger:   logger,
		registry: registry,
	}, nil
}

func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go a.handleSignals(cancel)

	return a.run(ctx)
}

// run serves until ctx is done or the listener fails. Pending workspaces are
// removed on either path.
func (a *App) run(ctx context.Context) error {
	a.logger.Info().
		Str("addr", a.server.Addr).
		Str("engine", a.cfg.Conversion.Engine).
		Str("scratch_root", a.registry.Root()).
		Msg("Starting server")

	serverErr := make(chan error, 1)
	go func() {
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		a.logger.Error().Err(err).Msg("Server error")
		a.registry.Drain()
		return err
	case <-ctx.Done():
		a.logger.Info().Msg("Shutting down server")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
		defer shutdownCancel()

		if err := a.server.Shutdown(shutdownCtx); err != nil {
			a.logger.Error().Err(err).Msg("Server shutdown failed")
		}

		if left := a.registry.Len(); left > 0 {
			a.logger.Info().Int("workspaces", left).Msg("Removing leftover workspaces")
		}
		a.registry.Drain()

		a.logger.Info().Msg("Server stopped gracefully")
		return nil
	}
}

func (a *App) handleSignals(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	a.logger.Info().Str("signal", sig.String()).Msg("Received signal")
	cancel()
}
