// Package main is the entry point for the Travel Journal API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pkordes/travel-journal/backend/internal/app"
	"github.com/pkordes/travel-journal/backend/internal/config"
	"github.com/pkordes/travel-journal/backend/internal/handler"
	"github.com/pkordes/travel-journal/backend/internal/logging"
	"github.com/pkordes/travel-journal/backend/internal/middleware"
	"github.com/pkordes/travel-journal/backend/internal/telemetry"
	"github.com/pkordes/travel-journal/backend/spec"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	logger, syncLogs := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	defer syncLogs()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Telemetry --------------------------------------------------------
	shutdownTelemetry, err := telemetry.Setup(ctx, telemetry.Config{
		ServiceName:  cfg.ServiceName,
		Environment:  cfg.Environment,
		OTLPEndpoint: cfg.OTLPEndpoint,
	})
	if err != nil {
		slog.Error("failed to set up telemetry", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := shutdownTelemetry(context.Background()); err != nil {
			slog.Error("telemetry shutdown error", "error", err)
		}
	}()
	metrics, err := telemetry.NewMetrics(nil)
	if err != nil {
		slog.Error("failed to register metrics", "error", err)
		os.Exit(1)
	}

	// --- Journal ----------------------------------------------------------
	a, err := app.New(ctx, cfg, logger, app.Options{Events: true, Metrics: metrics})
	if err != nil {
		slog.Error("failed to start journal", "error", err)
		os.Exit(1)
	}
	defer a.Close()
	go a.Hub.Run(ctx)

	// --- Router -----------------------------------------------------------
	// Order: RequestID → RealIP → Logger → Recoverer → CORS → body limit.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))

	srv := handler.NewServer(handler.Deps{
		Journal:   a.Journal,
		Assistant: a.Assistant,
		Guide:     a.Pipeline,
		Model:     a.Model,
		Flights:   a.Flights,
		Places:    a.Places,
		Events:    a.Hub.Handler(allowOrigins(cfg.CORSOrigins)),
		OpenAPI:   spec.OpenAPI,
		Logger:    logger,
	})
	r.Mount("/", srv.Routes())

	// --- HTTP Server ------------------------------------------------------
	// WriteTimeout leaves room for a slow model answer on POST /api/ai.
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.UpstreamTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", httpSrv.Addr, "store", cfg.StoreBackend)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		return
	}
	slog.Info("server stopped")
}

// allowOrigins accepts websocket upgrades from the configured CORS origins
// and from same-origin pages.
func allowOrigins(origins []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || origin == "http://"+r.Host || origin == "https://"+r.Host {
			return true
		}
		return slices.Contains(origins, origin) || slices.Contains(origins, "*")
	}
}
