// Command datasetimport copies <data dir>/<event>/data.json files into the
// SQLite database served by VERIFY25_DATASET_SOURCE=sqlite. With arguments it
// imports only the named events.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/cbitosc/verify25/internal/adapter/driven/dataset"
	sqliteadapter "github.com/cbitosc/verify25/internal/adapter/driven/sqlite"
	"github.com/cbitosc/verify25/internal/config"
	"github.com/cbitosc/verify25/internal/domain/port/driven"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run(only []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqliteadapter.Open(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	dataFS := os.DirFS(cfg.DataDir)
	names := only
	if len(names) == 0 {
		events, err := dataset.NewFSCatalog(dataFS, nil).List(ctx)
		if err != nil {
			return err
		}
		for _, e := range events {
			names = append(names, e.Name)
		}
	}

	imported, err := importEvents(ctx, dataset.NewFSLoader(dataFS), sqliteadapter.NewRecordRepo(db), names)
	slog.Info("import finished", "db_path", cfg.DBPath, "events", imported, "requested", len(names))
	return err
}

// importEvents replaces the stored dataset of each named event. Events whose
// dataset cannot be read are skipped and reported in the returned error.
func importEvents(ctx context.Context, src driven.DatasetLoader, dst *sqliteadapter.RecordRepo, names []string) (int, error) {
	imported := 0
	var failed []string

	for _, name := range names {
		records, err := src.Load(ctx, name)
		if err != nil {
			slog.Warn("skipping event", "event", name, "error", err)
			failed = append(failed, name)
			continue
		}

		if err := dst.ReplaceEvent(ctx, name, records); err != nil {
			return imported, err
		}
		slog.Info("imported event", "event", name, "records", len(records))
		imported++
	}

	if len(failed) > 0 {
		return imported, fmt.Errorf("could not read datasets for %d event(s): %v", len(failed), failed)
	}
	return imported, nil
}
