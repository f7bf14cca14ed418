// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// DatasetSource selects where event datasets are loaded from.
type DatasetSource string

const (
	SourceFile   DatasetSource = "file"
	SourceHTTP   DatasetSource = "http"
	SourceGitHub DatasetSource = "github"
	SourceSQLite DatasetSource = "sqlite"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	ListenAddr string
	DataDir    string
	Events     []string

	DatasetSource DatasetSource
	DatasetURL    string
	GitHubRepo    string
	GitHubRef     string
	GitHubToken   string
	GitHubPath    string
	DBPath        string
	FetchTimeout  time.Duration

	ProductionBaseURL string
	DefaultEvent      string
	QRSize            int
	DevNoCache        bool
}

// Load reads configuration from environment variables and returns a validated Config.
// All variables are optional. Defaults: VERIFY25_LISTEN_ADDR (127.0.0.1:8000),
// VERIFY25_DATA_DIR (docs), VERIFY25_DATASET_SOURCE (file),
// VERIFY25_GITHUB_REPO (cbitosc/verify25), VERIFY25_GITHUB_PATH (docs),
// VERIFY25_DB_PATH (verify25.db), VERIFY25_FETCH_TIMEOUT (10s),
// VERIFY25_DEFAULT_EVENT (hfestP), VERIFY25_QR_SIZE (384).
// VERIFY25_DATASET_URL is required when the source is http.
func Load() (*Config, error) {
	cfg := &Config{
		ListenAddr:    envOr("VERIFY25_LISTEN_ADDR", "127.0.0.1:8000"),
		DataDir:       envOr("VERIFY25_DATA_DIR", "docs"),
		Events:        splitList(os.Getenv("VERIFY25_EVENTS")),
		DatasetSource: DatasetSource(strings.ToLower(envOr("VERIFY25_DATASET_SOURCE", string(SourceFile)))),
		DatasetURL:    os.Getenv("VERIFY25_DATASET_URL"),
		GitHubRepo:    envOr("VERIFY25_GITHUB_REPO", "cbitosc/verify25"),
		GitHubRef:     os.Getenv("VERIFY25_GITHUB_REF"),
		GitHubToken:   os.Getenv("VERIFY25_GITHUB_TOKEN"),
		GitHubPath:    envOr("VERIFY25_GITHUB_PATH", "docs"),
		DBPath:        envOr("VERIFY25_DB_PATH", "verify25.db"),
		FetchTimeout:  10 * time.Second,

		ProductionBaseURL: os.Getenv("VERIFY25_PRODUCTION_BASE_URL"),
		DefaultEvent:      os.Getenv("VERIFY25_DEFAULT_EVENT"),
		QRSize:            384,
	}

	if v, ok := os.LookupEnv("VERIFY25_FETCH_TIMEOUT"); ok {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("VERIFY25_FETCH_TIMEOUT has invalid duration %q: %w", v, err)
		}
		if parsed <= 0 {
			return nil, fmt.Errorf("VERIFY25_FETCH_TIMEOUT must be positive, got %s", parsed)
		}
		cfg.FetchTimeout = parsed
	}

	if v, ok := os.LookupEnv("VERIFY25_QR_SIZE"); ok {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("VERIFY25_QR_SIZE must be a positive integer, got %q", v)
		}
		cfg.QRSize = parsed
	}

	if v, ok := os.LookupEnv("VERIFY25_DEV_NO_CACHE"); ok && v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("VERIFY25_DEV_NO_CACHE has invalid boolean %q: %w", v, err)
		}
		cfg.DevNoCache = parsed
	}

	switch cfg.DatasetSource {
	case SourceFile, SourceGitHub, SourceSQLite:
	case SourceHTTP:
		if cfg.DatasetURL == "" {
			return nil, fmt.Errorf("VERIFY25_DATASET_URL is required when VERIFY25_DATASET_SOURCE is %q", SourceHTTP)
		}
	default:
		return nil, fmt.Errorf("VERIFY25_DATASET_SOURCE has invalid value %q: want file, http, github or sqlite", cfg.DatasetSource)
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func splitList(v string) []string {
	out := []string{}
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
