package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/DataMentes/Job-Market-Insights-analysis/internal/types"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const postgresRunsDDL = `CREATE TABLE IF NOT EXISTS pipeline_runs (
	id UUID PRIMARY KEY,
	market TEXT NOT NULL,
	source TEXT NOT NULL,
	status TEXT NOT NULL,
	rows_in INTEGER NOT NULL,
	rows_out INTEGER NOT NULL,
	dropped INTEGER NOT NULL,
	started_at TIMESTAMPTZ NOT NULL,
	completed_at TIMESTAMPTZ
)`

var _ Store = (*Postgres)(nil)

// undefinedTable is the SQLSTATE of a missing relation.
const undefinedTable = "42P01"

func noTable(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == undefinedTable {
		return fmt.Errorf("%w: %w", ErrNoTable, err)
	}
	return err
}

// Postgres stores the clean tables in PostgreSQL.
type Postgres struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// OpenPostgres establishes a connection pool to the database.
func OpenPostgres(ctx context.Context, databaseURL string, logger *zap.Logger) (*Postgres, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, &Error{Op: "open", Message: "failed to connect to database", Cause: err}
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, &Error{Op: "open", Message: "failed to ping database", Cause: err}
	}
	if _, err := pool.Exec(ctx, postgresRunsDDL); err != nil {
		pool.Close()
		return nil, &Error{Op: "open", Table: "pipeline_runs", Message: "failed to create table", Cause: err}
	}

	return &Postgres{pool: pool, logger: logger}, nil
}

// Replace implements Store. Rows are bulk loaded with COPY.
func (p *Postgres) Replace(ctx context.Context, m types.Market, records []types.JobRecord) error {
	table := m.Table()
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return &Error{Op: "replace", Table: table, Message: "failed to begin transaction", Cause: err}
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, "DROP TABLE IF EXISTS "+quoteIdent(table)); err != nil {
		return &Error{Op: "replace", Table: table, Message: "failed to drop table", Cause: err}
	}
	if _, err := tx.Exec(ctx, createTableSQL(table)); err != nil {
		return &Error{Op: "replace", Table: table, Message: "failed to create table", Cause: err}
	}

	rows := make([][]any, len(records))
	for i, r := range records {
		rows[i] = recordValues(r)
	}
	n, err := tx.CopyFrom(ctx, pgx.Identifier{table}, types.CleanColumns, pgx.CopyFromRows(rows))
	if err != nil {
		return &Error{Op: "replace", Table: table, Message: "copy failed", Cause: err}
	}
	if err := tx.Commit(ctx); err != nil {
		return &Error{Op: "replace", Table: table, Message: "failed to commit", Cause: err}
	}
	p.logger.Info("replaced table", zap.String("table", table), zap.Int64("rows", n))
	return nil
}

// Load implements Store.
func (p *Postgres) Load(ctx context.Context, m types.Market) ([]types.JobRecord, error) {
	table := m.Table()
	rows, err := p.pool.Query(ctx, selectSQL(table))
	if err != nil {
		return nil, &Error{Op: "load", Table: table, Message: "query failed", Cause: noTable(err)}
	}
	defer rows.Close()

	var out []types.JobRecord
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, &Error{Op: "load", Table: table, Message: "failed to scan row", Cause: err}
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, &Error{Op: "load", Table: table, Message: "row iteration failed", Cause: noTable(err)}
	}
	return out, nil
}

// SaveRun implements Store.
func (p *Postgres) SaveRun(ctx context.Context, run Run) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO pipeline_runs (id, market, source, status, rows_in, rows_out, dropped, started_at, completed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (id) DO UPDATE SET status = $4, rows_in = $5, rows_out = $6, dropped = $7, completed_at = $9`,
		run.ID, run.Market, run.Source, run.Status, run.RowsIn, run.RowsOut, run.Dropped,
		run.StartedAt, run.CompletedAt,
	)
	if err != nil {
		return &Error{Op: "save run", Table: "pipeline_runs", Message: "insert failed", Cause: err}
	}
	return nil
}

// Runs implements Store, newest first.
func (p *Postgres) Runs(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := p.pool.Query(ctx,
		`SELECT id, market, source, status, rows_in, rows_out, dropped, started_at, completed_at
		 FROM pipeline_runs ORDER BY started_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, &Error{Op: "list runs", Table: "pipeline_runs", Message: "query failed", Cause: err}
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.Market, &run.Source, &run.Status, &run.RowsIn, &run.RowsOut,
			&run.Dropped, &run.StartedAt, &run.CompletedAt); err != nil {
			return nil, &Error{Op: "list runs", Table: "pipeline_runs", Message: "failed to scan row", Cause: err}
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Close implements Store.
func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}
