package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	"github.com/cbitosc/verify25/internal/adapter/driven/dataset"
	githubadapter "github.com/cbitosc/verify25/internal/adapter/driven/github"
	"github.com/cbitosc/verify25/internal/adapter/driven/metrics"
	"github.com/cbitosc/verify25/internal/adapter/driven/qrcode"
	sqliteadapter "github.com/cbitosc/verify25/internal/adapter/driven/sqlite"
	httphandler "github.com/cbitosc/verify25/internal/adapter/driving/http"
	webhandler "github.com/cbitosc/verify25/internal/adapter/driving/web"
	"github.com/cbitosc/verify25/internal/application"
	"github.com/cbitosc/verify25/internal/config"
	"github.com/cbitosc/verify25/internal/domain/port/driven"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration.
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"data_dir", cfg.DataDir,
		"dataset_source", cfg.DatasetSource,
		"dev_no_cache", cfg.DevNoCache,
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dataFS := os.DirFS(cfg.DataDir)

	// 3. Wire the dataset loader for the configured source.
	loader, closeLoader, err := newDatasetLoader(ctx, cfg, dataFS)
	if err != nil {
		return err
	}
	defer closeLoader()

	// 4. Wire remaining adapters.
	catalog := dataset.NewFSCatalog(dataFS, cfg.Events)
	encoder := qrcode.NewEncoder(cfg.QRSize)
	recorder := metrics.NewPrometheusRecorder()

	// 5. Create verification service.
	resolver := application.NewEnvironmentResolver(cfg.ProductionBaseURL, cfg.DefaultEvent)
	verifySvc := application.NewVerificationService(loader, resolver, recorder, slog.Default())

	// 6. Register API, web and metrics routes.
	mux := http.NewServeMux()
	httphandler.RegisterAPIRoutes(mux, httphandler.NewHandler(catalog, verifySvc, slog.Default()))
	webhandler.RegisterRoutes(mux, webhandler.NewHandler(catalog, verifySvc, encoder, dataFS, slog.Default()))
	mux.Handle("GET /metrics", recorder.Handler())

	handler := httphandler.ApplyMiddleware(mux, slog.Default(), cfg.DevNoCache)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server error", "error", err)
			stop()
		}
	}()

	// 7. Log the event pages available for testing.
	events, err := catalog.List(ctx)
	if err != nil {
		slog.Warn("could not list events", "error", err)
	}
	for _, e := range events {
		slog.Info("event page",
			"event", e.Name,
			"url", fmt.Sprintf("http://%s/%s/?id=<CODE>", cfg.ListenAddr, e.Name),
		)
	}
	slog.Info("verify25 started", "listen_addr", cfg.ListenAddr, "events", len(events))

	// 8. Wait for shutdown signal.
	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}

// newDatasetLoader builds the DatasetLoader for cfg.DatasetSource. The
// returned close function releases any resources the loader holds.
func newDatasetLoader(ctx context.Context, cfg *config.Config, dataFS fs.FS) (driven.DatasetLoader, func(), error) {
	noop := func() {}

	switch cfg.DatasetSource {
	case config.SourceHTTP:
		client := &http.Client{Timeout: cfg.FetchTimeout}
		return dataset.NewHTTPLoader(client, cfg.DatasetURL), noop, nil

	case config.SourceGitHub:
		client, err := githubadapter.NewClient(githubadapter.Options{
			Repo:     cfg.GitHubRepo,
			Ref:      cfg.GitHubRef,
			RootPath: cfg.GitHubPath,
			Token:    cfg.GitHubToken,
			Timeout:  cfg.FetchTimeout,
		})
		if err != nil {
			return nil, nil, err
		}
		slog.Info("github dataset source", "repo", cfg.GitHubRepo, "ref", cfg.GitHubRef, "path", cfg.GitHubPath)
		return client, noop, nil

	case config.SourceSQLite:
		db, err := sqliteadapter.Open(ctx, cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		slog.Info("database opened", "path", cfg.DBPath)
		closeDB := func() {
			if closeErr := db.Close(); closeErr != nil {
				slog.Error("error closing database", "error", closeErr)
			}
		}
		return sqliteadapter.NewRecordRepo(db), closeDB, nil

	default:
		return dataset.NewFSLoader(dataFS), noop, nil
	}
}
