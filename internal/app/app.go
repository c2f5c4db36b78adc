// Package app assembles the journal's collaborators from a Config. The API
// server and the CLI share it so both read and write the same state store.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/pkordes/travel-journal/backend/internal/ai"
	"github.com/pkordes/travel-journal/backend/internal/config"
	"github.com/pkordes/travel-journal/backend/internal/events"
	"github.com/pkordes/travel-journal/backend/internal/flights"
	"github.com/pkordes/travel-journal/backend/internal/lookup"
	"github.com/pkordes/travel-journal/backend/internal/photo"
	"github.com/pkordes/travel-journal/backend/internal/repo"
	"github.com/pkordes/travel-journal/backend/internal/service"
	"github.com/pkordes/travel-journal/backend/internal/telemetry"
)

// Version is reported by the CLI and the MCP server.
const Version = "0.1.0"

// Options tweaks what New builds.
type Options struct {
	// Events creates a websocket hub and routes state changes to it. The
	// caller must run the hub.
	Events bool
	// Metrics is recorded by every component; nil records nothing.
	Metrics *telemetry.Metrics
}

// App holds the wired components.
type App struct {
	Config    config.Config
	Logger    *slog.Logger
	Journal   *service.Journal
	Assistant *service.Assistant
	Pipeline  *ai.Pipeline
	Model     *ai.ResponsesClient
	Flights   *flights.Client
	Places    *lookup.Client
	// Hub is nil unless Options.Events was set.
	Hub *events.Hub

	closers []func() error
}

// New opens the configured state store and builds every service on top of it.
// Call Close to release connections.
func New(ctx context.Context, cfg config.Config, log *slog.Logger, opts Options) (_ *App, err error) {
	if log == nil {
		log = slog.Default()
	}
	a := &App{Config: cfg, Logger: log}
	defer func() {
		if err != nil {
			_ = a.Close()
		}
	}()

	upstream := &http.Client{Timeout: cfg.UpstreamTimeout}

	var rdb *redis.Client
	if cfg.StoreBackend == config.StoreRedis || cfg.PlaceCache == config.CacheRedis {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		a.closers = append(a.closers, rdb.Close)
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("app.New: redis ping: %w", err)
		}
	}

	slots, err := a.openSlots(ctx, rdb)
	if err != nil {
		return nil, err
	}
	store := repo.NewStateRepo(slots, cfg.StateKey, log, opts.Metrics)

	jopts := []service.Option{
		service.WithLogger(log),
		service.WithPhotoOptions(photo.Options{MaxDimension: cfg.PhotoMaxDimension}),
		service.WithPublicBaseURL(cfg.PublicBaseURL),
	}
	if opts.Events {
		a.Hub = events.NewHub(log)
		jopts = append(jopts, service.WithNotifier(a.Hub))
	}
	a.Journal, err = service.NewJournal(ctx, store, jopts...)
	if err != nil {
		return nil, fmt.Errorf("app.New: %w", err)
	}

	var cache lookup.Cache = lookup.NewMemoryCache()
	if cfg.PlaceCache == config.CacheRedis {
		cache = lookup.NewRedisCache(rdb, cfg.RedisPrefix, cfg.PlaceCacheTTL, log)
	}
	a.Places = lookup.New(lookup.Options{
		NominatimURL: cfg.NominatimBaseURL,
		WikipediaURL: cfg.WikipediaBaseURL,
		UserAgent:    cfg.LookupUserAgent,
		HTTPClient:   upstream,
		Cache:        cache,
		Logger:       log,
		Metrics:      opts.Metrics,
	})
	a.closers = append(a.closers, func() error {
		a.Places.Close()
		return nil
	})

	a.Model = ai.NewResponsesClient(ai.ResponsesOptions{
		BaseURL:    cfg.OpenAIBaseURL,
		APIKey:     cfg.OpenAIAPIKey,
		Model:      cfg.OpenAIModel,
		HTTPClient: upstream,
	})
	a.Pipeline = ai.NewPipeline(a.Model, opts.Metrics)
	a.Assistant = service.NewAssistant(a.Journal, a.Places, a.Pipeline, log)

	a.Flights = flights.New(flights.Options{
		BaseURL:      cfg.AmadeusURL(),
		ClientID:     cfg.AmadeusClientID,
		ClientSecret: cfg.AmadeusClientSecret,
		HTTPClient:   upstream,
		Metrics:      opts.Metrics,
	})

	log.InfoContext(ctx, "journal ready",
		"store", cfg.StoreBackend,
		"place_cache", cfg.PlaceCache,
		"model", a.Model.Model(),
		"has_key", a.Model.HasKey(),
		"flights", a.Flights.Configured(),
	)
	return a, nil
}

func (a *App) openSlots(ctx context.Context, rdb *redis.Client) (repo.SlotRepo, error) {
	cfg := a.Config
	switch cfg.StoreBackend {
	case config.StoreMemory:
		return repo.NewMemorySlots(), nil

	case config.StoreFile:
		slots, err := repo.NewFileSlots(cfg.StorePath)
		if err != nil {
			return nil, fmt.Errorf("app.New: %w", err)
		}
		return slots, nil

	case config.StoreSQLite:
		slots, err := repo.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("app.New: %w", err)
		}
		a.closers = append(a.closers, slots.Close)
		return slots, nil

	case config.StorePostgres:
		pool, err := OpenPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() error {
			pool.Close()
			return nil
		})
		a.Logger.InfoContext(ctx, "database connection established")
		return repo.NewPostgresSlots(pool), nil

	case config.StoreRedis:
		return repo.NewRedisSlots(rdb, cfg.RedisPrefix), nil
	}
	return nil, fmt.Errorf("app.New: unknown store backend %q", cfg.StoreBackend)
}

// OpenPool connects to Postgres and verifies the database is reachable.
func OpenPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("app.OpenPool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("app.OpenPool: ping: %w", err)
	}
	return pool, nil
}

// Close releases everything New opened, newest first.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}
