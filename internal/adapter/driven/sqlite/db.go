// Package sqlite implements the DatasetLoader port over a SQLite database
// populated by the datasetimport command.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Pragmas shared by file and in-memory databases.
const basePragmas = "_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"

// DB pairs a single-connection writer, used by the importer, with a
// query-only reader pool that serves page lookups.
type DB struct {
	Writer *sql.DB
	Reader *sql.DB
	path   string
}

// Open opens the database file at path in WAL mode and applies any pending
// schema migrations.
func Open(ctx context.Context, path string) (*DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&%s&_pragma=cache_size(-16000)", path, basePragmas)
	return open(ctx, dsn, path)
}

func open(ctx context.Context, dsn, path string) (*DB, error) {
	writer, err := openPool(ctx, dsn, 1)
	if err != nil {
		return nil, fmt.Errorf("open writer: %w", err)
	}

	reader, err := openPool(ctx, dsn+"&_pragma=query_only(1)", 4)
	if err != nil {
		_ = writer.Close()
		return nil, fmt.Errorf("open reader: %w", err)
	}

	db := &DB{Writer: writer, Reader: reader, path: path}
	if err := db.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func openPool(ctx context.Context, dsn string, maxConns int) (*sql.DB, error) {
	pool, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	pool.SetMaxOpenConns(maxConns)

	if err := pool.PingContext(ctx); err != nil {
		_ = pool.Close()
		return nil, err
	}
	return pool, nil
}

// Path returns the database location given to Open.
func (db *DB) Path() string { return db.path }

// Close releases both pools and reports the first failure.
func (db *DB) Close() error {
	readerErr := db.Reader.Close()
	writerErr := db.Writer.Close()

	switch {
	case readerErr != nil:
		return fmt.Errorf("close reader: %w", readerErr)
	case writerErr != nil:
		return fmt.Errorf("close writer: %w", writerErr)
	}
	return nil
}
