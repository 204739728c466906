// Backoffice - Admin Console for the Games API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/backoffice

// Package main is the entry point for the Backoffice admin console.
//
// The console is a password-protected web UI in front of the games API. It
// manages messages and recruitment candidates, lists games in progress and
// historical games, and shows geolocated games on a map. It stores nothing
// itself; every page is rendered from backend calls made with the admin
// bearer token.
//
// # Startup
//
//  1. Configuration: defaults, optional config.yaml, environment (Koanf v2)
//  2. Logging: zerolog configured from LOG_LEVEL / LOG_FORMAT
//  3. Backend client, session store, handlers and the Chi router
//  4. Supervisor tree running the HTTP server until SIGINT or SIGTERM
//
// # Configuration
//
// The common settings are environment variables:
//
//	export API_BASE=http://localhost:8000
//	export ADMIN_TOKEN=...
//	export ADMIN_PASSWORD=...
//	export SECRET_KEY=...
//	export PORT=5000
//	./backoffice
//
// Settings still carrying a shipped default are logged as warnings at
// startup.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/backoffice/internal/api"
	"github.com/tomtom215/backoffice/internal/auth"
	"github.com/tomtom215/backoffice/internal/backend"
	"github.com/tomtom215/backoffice/internal/config"
	"github.com/tomtom215/backoffice/internal/logging"
	"github.com/tomtom215/backoffice/internal/supervisor"
	"github.com/tomtom215/backoffice/internal/supervisor/services"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Default logger; config not yet available
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Str("api_base", cfg.Backend.BaseURL).
		Str("environment", cfg.Server.Environment).
		Bool("debug", cfg.Server.Debug).
		Bool("circuit_breaker", cfg.Backend.CircuitBreaker.Enabled).
		Msg("Configuration loaded")
	for _, warning := range cfg.Warnings() {
		logging.Warn().Msg(warning)
	}

	client := backend.NewClient(&cfg.Backend)

	sessions, err := auth.NewSessions(&cfg.Session)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create session store")
	}

	handler, err := api.NewHandler(cfg, client, sessions)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load templates")
	}
	router := api.NewRouter(cfg, handler, sessions)

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  shutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}
	tree.AddAPIService(services.NewHTTPServerService(server, shutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.Info().Msg("Starting supervisor tree")
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Backoffice stopped")
}
