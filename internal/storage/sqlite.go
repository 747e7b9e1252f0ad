package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/DataMentes/Job-Market-Insights-analysis/internal/types"
	"github.com/google/uuid"
	"go.uber.org/zap"

	_ "modernc.org/sqlite"
)

// DefaultSQLitePath is the database file used when no DSN is configured.
const DefaultSQLitePath = "database.db"

const sqliteRunsDDL = `CREATE TABLE IF NOT EXISTS pipeline_runs (
	id TEXT PRIMARY KEY,
	market TEXT NOT NULL,
	source TEXT NOT NULL,
	status TEXT NOT NULL,
	rows_in INTEGER NOT NULL,
	rows_out INTEGER NOT NULL,
	dropped INTEGER NOT NULL,
	started_at TEXT NOT NULL,
	completed_at TEXT
)`

var _ Store = (*SQLite)(nil)

// SQLite is the file-backed store.
type SQLite struct {
	db     *sql.DB
	logger *zap.Logger
}

// OpenSQLite opens (creating if needed) the database file at path.
func OpenSQLite(ctx context.Context, path string, logger *zap.Logger) (*SQLite, error) {
	if path == "" {
		path = DefaultSQLitePath
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, &Error{Op: "open", Message: "failed to create database directory", Cause: err}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &Error{Op: "open", Message: "failed to open database", Cause: err}
	}
	// One writer; avoids SQLITE_BUSY between concurrent market runs.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, sqliteRunsDDL); err != nil {
		_ = db.Close()
		return nil, &Error{Op: "open", Table: "pipeline_runs", Message: "failed to create table", Cause: err}
	}
	logger.Debug("opened sqlite store", zap.String("path", path))
	return &SQLite{db: db, logger: logger}, nil
}

// Replace implements Store.
func (s *SQLite) Replace(ctx context.Context, m types.Market, records []types.JobRecord) error {
	table := m.Table()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &Error{Op: "replace", Table: table, Message: "failed to begin transaction", Cause: err}
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+quoteIdent(table)); err != nil {
		return &Error{Op: "replace", Table: table, Message: "failed to drop table", Cause: err}
	}
	if _, err := tx.ExecContext(ctx, createTableSQL(table)); err != nil {
		return &Error{Op: "replace", Table: table, Message: "failed to create table", Cause: err}
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(types.CleanColumns)), ", ")
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(table), strings.Join(types.CleanColumns, ", "), placeholders))
	if err != nil {
		return &Error{Op: "replace", Table: table, Message: "failed to prepare insert", Cause: err}
	}
	defer func() { _ = stmt.Close() }()

	for i, r := range records {
		if _, err := stmt.ExecContext(ctx, recordValues(r)...); err != nil {
			return &Error{Op: "replace", Table: table, Message: fmt.Sprintf("failed to insert row %d", i), Cause: err}
		}
	}
	if err := tx.Commit(); err != nil {
		return &Error{Op: "replace", Table: table, Message: "failed to commit", Cause: err}
	}
	s.logger.Info("replaced table", zap.String("table", table), zap.Int("rows", len(records)))
	return nil
}

// Load implements Store.
func (s *SQLite) Load(ctx context.Context, m types.Market) ([]types.JobRecord, error) {
	table := m.Table()
	rows, err := s.db.QueryContext(ctx, selectSQL(table))
	if err != nil {
		if strings.Contains(err.Error(), "no such table") {
			err = fmt.Errorf("%w: %w", ErrNoTable, err)
		}
		return nil, &Error{Op: "load", Table: table, Message: "query failed", Cause: err}
	}
	defer func() { _ = rows.Close() }()

	var out []types.JobRecord
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, &Error{Op: "load", Table: table, Message: "failed to scan row", Cause: err}
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, &Error{Op: "load", Table: table, Message: "row iteration failed", Cause: err}
	}
	return out, nil
}

// SaveRun implements Store. Saving an existing run ID updates it.
func (s *SQLite) SaveRun(ctx context.Context, run Run) error {
	var completed sql.NullString
	if run.CompletedAt != nil {
		completed = sql.NullString{String: run.CompletedAt.UTC().Format(time.RFC3339), Valid: true}
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO pipeline_runs
		(id, market, source, status, rows_in, rows_out, dropped, started_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET status = excluded.status, rows_in = excluded.rows_in,
			rows_out = excluded.rows_out, dropped = excluded.dropped, completed_at = excluded.completed_at`,
		run.ID.String(), run.Market, run.Source, run.Status, run.RowsIn, run.RowsOut, run.Dropped,
		run.StartedAt.UTC().Format(time.RFC3339), completed)
	if err != nil {
		return &Error{Op: "save run", Table: "pipeline_runs", Message: "insert failed", Cause: err}
	}
	return nil
}

// Runs implements Store, newest first.
func (s *SQLite) Runs(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `SELECT id, market, source, status, rows_in, rows_out, dropped,
		started_at, completed_at FROM pipeline_runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, &Error{Op: "list runs", Table: "pipeline_runs", Message: "query failed", Cause: err}
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		var (
			run       Run
			id        string
			started   string
			completed sql.NullString
		)
		if err := rows.Scan(&id, &run.Market, &run.Source, &run.Status, &run.RowsIn, &run.RowsOut,
			&run.Dropped, &started, &completed); err != nil {
			return nil, &Error{Op: "list runs", Table: "pipeline_runs", Message: "failed to scan row", Cause: err}
		}
		run.ID, _ = uuid.Parse(id)
		run.StartedAt, _ = time.Parse(time.RFC3339, started)
		if completed.Valid {
			t, err := time.Parse(time.RFC3339, completed.String)
			if err == nil {
				run.CompletedAt = &t
			}
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Close implements Store.
func (s *SQLite) Close() error {
	return s.db.Close()
}
