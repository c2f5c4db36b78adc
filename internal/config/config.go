// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Store backends accepted by STORE_BACKEND.
const (
	StoreMemory   = "memory"
	StoreFile     = "file"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

// Place cache backends accepted by PLACE_CACHE.
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Config holds all configuration values for the API server and the CLI.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on.
	Port string `env:"PORT" envDefault:"8080"`

	// LogLevel controls the minimum log level.
	// Valid values: debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// LogFormat selects the log encoder: json or console.
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Set CORS_ORIGINS to a comma-separated list to override.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`

	// MaxBodyBytes caps request bodies. Photos travel inline, so the default is generous.
	MaxBodyBytes int64 `env:"MAX_BODY_BYTES" envDefault:"10485760"`

	// StoreBackend selects where the journal state is persisted.
	StoreBackend string `env:"STORE_BACKEND" envDefault:"file"`
	StorePath    string `env:"STORE_PATH" envDefault:"data"`
	SQLitePath   string `env:"SQLITE_PATH" envDefault:"data/journal.db"`
	StateKey     string `env:"STATE_KEY" envDefault:"tj.v1"`

	// DatabaseURL is the Postgres connection string. Required when StoreBackend is postgres.
	DatabaseURL string `env:"DATABASE_URL"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	RedisPrefix   string `env:"REDIS_PREFIX" envDefault:"tj"`

	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	OpenAIModel   string `env:"OPENAI_MODEL" envDefault:"gpt-5-mini"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com"`

	// AmadeusEnv selects the flight provider host: "production" uses the live
	// API, anything else the test API.
	AmadeusEnv          string `env:"AMADEUS_ENV" envDefault:"test"`
	AmadeusClientID     string `env:"AMADEUS_CLIENT_ID"`
	AmadeusClientSecret string `env:"AMADEUS_CLIENT_SECRET"`
	AmadeusBaseURL      string `env:"AMADEUS_BASE_URL"`

	NominatimBaseURL string        `env:"NOMINATIM_BASE_URL" envDefault:"https://nominatim.openstreetmap.org"`
	WikipediaBaseURL string        `env:"WIKIPEDIA_BASE_URL" envDefault:"https://en.wikipedia.org"`
	LookupUserAgent  string        `env:"LOOKUP_USER_AGENT" envDefault:"travel-journal/1.0"`
	PlaceCache       string        `env:"PLACE_CACHE" envDefault:"memory"`
	PlaceCacheTTL    time.Duration `env:"PLACE_CACHE_TTL" envDefault:"24h"`

	// PhotoMaxDimension downsizes photos whose longest edge exceeds it. 0 disables resizing.
	PhotoMaxDimension uint `env:"PHOTO_MAX_DIMENSION" envDefault:"0"`

	// PublicBaseURL is the app root that share links are built from. It ends with "/".
	PublicBaseURL string `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:8080/"`

	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"30s"`

	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName  string `env:"SERVICE_NAME" envDefault:"travel-journal"`
	Environment  string `env:"ENVIRONMENT" envDefault:"development"`
}

// Load reads configuration from environment variables and returns a Config.
// A .env file in the working directory is read first when present; variables
// already set in the process environment win. Empty variables count as unset.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg, env.Options{Environment: nonEmptyEnviron()}); err != nil {
		return Config{}, fmt.Errorf("config.Load: %w", err)
	}
	cfg.CORSOrigins = splitCSV(strings.Join(cfg.CORSOrigins, ","))

	var missing []string
	if cfg.StoreBackend == StorePostgres && cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	switch cfg.StoreBackend {
	case StoreMemory, StoreFile, StoreSQLite, StorePostgres, StoreRedis:
	default:
		return Config{}, fmt.Errorf("STORE_BACKEND %q is not one of memory, file, sqlite, postgres, redis", cfg.StoreBackend)
	}
	switch cfg.PlaceCache {
	case CacheMemory, CacheRedis:
	default:
		return Config{}, fmt.Errorf("PLACE_CACHE %q is not one of memory, redis", cfg.PlaceCache)
	}

	if !strings.HasSuffix(cfg.PublicBaseURL, "/") {
		cfg.PublicBaseURL += "/"
	}

	return cfg, nil
}

// AmadeusURL returns the flight provider base URL, honouring an explicit
// override before falling back to the AMADEUS_ENV selection.
func (c Config) AmadeusURL() string {
	if c.AmadeusBaseURL != "" {
		return strings.TrimRight(c.AmadeusBaseURL, "/")
	}
	if c.AmadeusEnv == "production" {
		return "https://api.amadeus.com"
	}
	return "https://test.api.amadeus.com"
}

// nonEmptyEnviron returns the process environment without empty values so
// that envDefault applies to variables that are set but blank.
func nonEmptyEnviron() map[string]string {
	out := make(map[string]string)
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if ok && v != "" {
			out[k] = v
		}
	}
	return out
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
