// LlaqtaShield - Community Incident Reporting and Alert Mapping
// Copyright 2026 LlaqtaShield Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/llaqtashield/llaqtashield

// Package main is the entry point for the LlaqtaShield server.
//
// LlaqtaShield is a community incident-reporting service: citizens submit
// categorized alerts with optional location, contact, and photographic
// evidence; reports are persisted in an embedded DuckDB store and exposed
// over a small JSON API with a Basic-Auth admin listing.
//
// The server initializes components in the following order:
//
//  1. Configuration: layered defaults, YAML file, environment (Koanf v2)
//  2. Logging: zerolog, configured from the loaded settings
//  3. Database: embedded DuckDB with schema bootstrap
//  4. Stores: evidence uploads, document generator, rate limiter, credentials
//  5. HTTP server: Chi router with graceful SIGINT/SIGTERM shutdown
//
// Running with -init-db creates the database schema and exits, for
// provisioning ahead of first start.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/llaqtashield/llaqtashield/internal/api"
	"github.com/llaqtashield/llaqtashield/internal/auth"
	"github.com/llaqtashield/llaqtashield/internal/config"
	"github.com/llaqtashield/llaqtashield/internal/database"
	"github.com/llaqtashield/llaqtashield/internal/document"
	"github.com/llaqtashield/llaqtashield/internal/logging"
	"github.com/llaqtashield/llaqtashield/internal/ratelimit"
	"github.com/llaqtashield/llaqtashield/internal/upload"
)

const shutdownTimeout = 10 * time.Second

func main() {
	initDB := flag.Bool("init-db", false, "create the database schema and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("db_path", cfg.Database.Path).
		Str("upload_dir", cfg.Uploads.Dir).
		Str("document_dir", cfg.Documents.Dir).
		Msg("Configuration loaded")

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()

	if *initDB {
		logging.Info().Str("db_path", cfg.Database.Path).Msg("Database initialized")
		return
	}

	uploads, err := upload.NewStore(cfg.Uploads.Dir, nil)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize upload store")
	}

	documents, err := document.New(cfg.Documents.Dir)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize document generator")
	}

	limiter := ratelimit.New(cfg.Security.RateLimitMax, cfg.Security.RateLimitWindow)
	creds := auth.NewStaticStore(cfg.Security.AdminCredentials())

	handler := api.NewHandler(cfg, db, uploads, documents, limiter)
	router := api.NewRouter(cfg, handler, creds)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("HTTP server failed")
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logging.Error().Err(err).Msg("Graceful shutdown failed")
	} else {
		logging.Info().Msg("Server stopped")
	}
}
