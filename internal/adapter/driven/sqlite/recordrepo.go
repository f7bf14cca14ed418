package sqlite

import (
	"context"
	"fmt"

	"github.com/cbitosc/verify25/internal/domain/model"
	"github.com/cbitosc/verify25/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.DatasetLoader = (*RecordRepo)(nil)

// RecordRepo is the SQLite implementation of the DatasetLoader port.
// Records keep their dataset order through the seq column.
type RecordRepo struct {
	db *DB
}

// NewRecordRepo creates a new RecordRepo backed by the given DB.
func NewRecordRepo(db *DB) *RecordRepo {
	return &RecordRepo{db: db}
}

// Load returns the records of event in dataset order. An event with no
// imported records is a *model.FetchError, matching a missing data.json.
func (r *RecordRepo) Load(ctx context.Context, event string) ([]model.VerificationRecord, error) {
	const query = `SELECT code, holder, position FROM verification_records WHERE event = ? ORDER BY seq`
	source := "sqlite:" + r.db.Path()

	rows, err := r.db.Reader.QueryContext(ctx, query, event)
	if err != nil {
		return nil, &model.FetchError{Event: event, Source: source, Err: err}
	}
	defer rows.Close()

	var records []model.VerificationRecord
	for rows.Next() {
		var rec model.VerificationRecord
		var position string
		if err := rows.Scan(&rec.Code, &rec.Holder, &position); err != nil {
			return nil, &model.ParseError{Event: event, Source: source, Err: fmt.Errorf("scan record: %w", err)}
		}
		rec.Position = model.Position(position)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, &model.FetchError{Event: event, Source: source, Err: err}
	}

	if records == nil {
		return nil, &model.FetchError{Event: event, Source: source, Err: fmt.Errorf("no dataset imported")}
	}
	return records, nil
}

// ReplaceEvent atomically swaps the stored dataset of event for records.
func (r *RecordRepo) ReplaceEvent(ctx context.Context, event string, records []model.VerificationRecord) error {
	tx, err := r.db.Writer.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace %s: %w", event, err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, `DELETE FROM verification_records WHERE event = ?`, event); err != nil {
		return fmt.Errorf("clear records for %s: %w", event, err)
	}

	const insert = `INSERT INTO verification_records (event, seq, code, holder, position) VALUES (?, ?, ?, ?, ?)`
	for i, rec := range records {
		if _, err := tx.ExecContext(ctx, insert, event, i, rec.Code, rec.Holder, string(rec.Position)); err != nil {
			return fmt.Errorf("insert record %d for %s: %w", i, event, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace %s: %w", event, err)
	}
	return nil
}

// ListEvents returns the names of all events with imported records.
func (r *RecordRepo) ListEvents(ctx context.Context) ([]string, error) {
	const query = `SELECT DISTINCT event FROM verification_records ORDER BY event`
	rows, err := r.db.Reader.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []string
	for rows.Next() {
		var event string
		if err := rows.Scan(&event); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}
