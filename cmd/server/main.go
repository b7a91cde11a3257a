// Roommatch - Roommate Compatibility Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roommatch

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/roommatch/internal/api"
	"github.com/tomtom215/roommatch/internal/config"
	"github.com/tomtom215/roommatch/internal/database"
	"github.com/tomtom215/roommatch/internal/interactions"
	"github.com/tomtom215/roommatch/internal/logging"
	"github.com/tomtom215/roommatch/internal/match"
	"github.com/tomtom215/roommatch/internal/match/storage"
	"github.com/tomtom215/roommatch/internal/supervisor"
	"github.com/tomtom215/roommatch/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Caller:  cfg.Logging.Caller,
		Version: version,
		Output:  os.Stderr,
	})

	logging.Info().
		Str("db_path", cfg.Database.Path).
		Str("model_path", cfg.Match.ModelPath).
		Int("activation_threshold", cfg.Match.ActivationThreshold).
		Int("retrain_interval", cfg.Match.RetrainInterval).
		Bool("async_retrain", cfg.Match.AsyncRetrain).
		Msg("Starting Roommatch")

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("Server exited with error")
	}
	logging.Info().Msg("Application stopped gracefully")
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.New(&cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()

	repo, err := storage.NewRepository(cfg.Match.ModelPath, logging.WithComponent("model-repository"))
	if err != nil {
		return err
	}

	engine, err := match.NewEngine(engineConfig(&cfg.Match), db, repo, logging.WithComponent("match"))
	if err != nil {
		return err
	}

	tracker := interactions.NewTracker(
		db,
		db,
		interactions.LinkBuilder{BaseURL: cfg.Match.LinkBaseURL, CountryCode: cfg.Match.PhoneCountryCode},
		interactions.DefaultBreakerConfig(),
		logging.WithComponent("interactions"),
	)
	engine.SetViewRecorder(tracker)
	aggregator := interactions.NewAggregator(db)

	if cfg.Security.AdminToken == "" {
		logging.Warn().Msg("ADMIN_TOKEN is not set: /api/v1/admin endpoints are unauthenticated")
	}
	if cfg.Security.HasWildcardCORS() {
		logging.Warn().Msg("CORS_ORIGINS contains '*': any origin may call the API")
	}

	handler := api.NewHandler(db, engine, tracker, aggregator, version)
	router := api.NewRouter(
		handler,
		api.NewChiMiddleware(api.ChiMiddlewareConfigFromSecurity(&cfg.Security)),
		cfg.Security.AdminToken,
	)

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.DefaultTreeConfig())
	if err != nil {
		return err
	}

	tree.AddModelService(services.NewRetrainService(engine, services.RetrainServiceConfig{
		TrainOnStartup: cfg.Match.TrainOnStartup,
		CheckInterval:  cfg.Match.RetrainCheckInterval,
		Timeout:        cfg.Match.RetrainTimeout,
	}, logging.WithComponent("retrain")))

	tree.AddAPIService(services.NewHTTPServerService(server, server.Addr, cfg.Server.ShutdownTimeout, logging.WithComponent("http")))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	var treeErr error
	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutdown signal received, waiting for supervisor to finish...")
	case treeErr = <-errCh:
	}

	for err := range errCh {
		if treeErr == nil {
			treeErr = err
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	if treeErr != nil && !errors.Is(treeErr, context.Canceled) {
		return treeErr
	}
	return nil
}

// engineConfig maps the match section of the service configuration onto
// the engine's own config.
func engineConfig(cfg *config.MatchConfig) *match.Config {
	return &match.Config{
		ActivationThreshold: cfg.ActivationThreshold,
		RetrainInterval:     cfg.RetrainInterval,
		TopN:                cfg.TopN,
		AsyncRetrain:        cfg.AsyncRetrain,
		RetrainMinSpacing:   cfg.RetrainMinSpacing,
		RetrainTimeout:      cfg.RetrainTimeout,
	}
}
