// Package storage persists the clean per-market tables and the pipeline run log. SQLite
// (pure Go, no cgo) is the default backend; PostgreSQL is used when the configured DSN is
// a postgres URL.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/DataMentes/Job-Market-Insights-analysis/internal/types"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Run statuses.
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// Store is a clean-table store. Replace drops and recreates the market table, matching a
// full rewrite of the cleaned data.
type Store interface {
	Replace(ctx context.Context, m types.Market, records []types.JobRecord) error
	Load(ctx context.Context, m types.Market) ([]types.JobRecord, error)
	SaveRun(ctx context.Context, run Run) error
	Runs(ctx context.Context, limit int) ([]Run, error)
	Close() error
}

// Run is one pipeline execution as recorded in the run log.
type Run struct {
	ID          uuid.UUID  `json:"id"`
	Market      string     `json:"market"`
	Source      string     `json:"source"`
	Status      string     `json:"status"`
	RowsIn      int        `json:"rows_in"`
	RowsOut     int        `json:"rows_out"`
	Dropped     int        `json:"dropped"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// ErrNoTable is the cause of a Load whose market table has never been written.
var ErrNoTable = errors.New("table does not exist")

// Error wraps a failed storage operation.
type Error struct {
	Op      string
	Table   string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	prefix := "storage " + e.Op
	if e.Table != "" {
		prefix += " " + e.Table
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Open connects to the store selected by driver. An empty driver is inferred from dsn.
func Open(ctx context.Context, driver, dsn string, logger *zap.Logger) (Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if driver == "" {
		driver = DriverSQLite
		if isPostgresURL(dsn) {
			driver = DriverPostgres
		}
	}

	switch driver {
	case DriverSQLite:
		return OpenSQLite(ctx, dsn, logger)
	case DriverPostgres:
		return OpenPostgres(ctx, dsn, logger)
	default:
		return nil, &Error{Op: "open", Message: fmt.Sprintf("unknown driver %q", driver)}
	}
}

func isPostgresURL(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// quoteIdent quotes a table name; market tables contain upper case and dashes.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

const cleanColumnsDDL = `title TEXT NOT NULL,
	company_name TEXT NOT NULL,
	city TEXT NOT NULL,
	industry_ TEXT NOT NULL,
	company_size TEXT NOT NULL,
	date TEXT NOT NULL,
	num_of_vacancies INTEGER NOT NULL,
	type TEXT NOT NULL,
	job_level TEXT NOT NULL,
	gender TEXT NOT NULL,
	remote TEXT NOT NULL,
	min_num_of_years TEXT NOT NULL,
	max_num_of_years TEXT NOT NULL`

func createTableSQL(table string) string {
	return fmt.Sprintf("CREATE TABLE %s (\n\t%s\n)", quoteIdent(table), cleanColumnsDDL)
}

func selectSQL(table string) string {
	return fmt.Sprintf("SELECT %s FROM %s", strings.Join(types.CleanColumns, ", "), quoteIdent(table))
}

// recordValues returns the row values in types.CleanColumns order.
func recordValues(r types.JobRecord) []any {
	return []any{
		r.Title, r.CompanyName, r.City, r.Industry, r.CompanySize,
		r.PostingDate.Format(types.DateLayout), r.NumOfVacancies,
		string(r.JobType), string(r.JobLevel), string(r.Gender), string(r.RemoteMode),
		r.MinExperienceYears.String(), r.MaxExperienceYears.String(),
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(s rowScanner) (types.JobRecord, error) {
	var (
		r                    types.JobRecord
		date, jobType, level string
		gender, remote       string
		minYears, maxYears   string
	)
	err := s.Scan(&r.Title, &r.CompanyName, &r.City, &r.Industry, &r.CompanySize,
		&date, &r.NumOfVacancies, &jobType, &level, &gender, &remote, &minYears, &maxYears)
	if err != nil {
		return r, err
	}
	r.PostingDate, err = time.Parse(types.DateLayout, date)
	if err != nil {
		return r, fmt.Errorf("invalid date %q: %w", date, err)
	}
	r.JobType = types.ParseJobType(jobType)
	r.JobLevel = types.ParseJobLevel(level)
	r.Gender = types.ParseGender(gender)
	r.RemoteMode = types.ParseRemoteMode(remote)
	r.MinExperienceYears = types.ParseYears(minYears)
	r.MaxExperienceYears = types.ParseYears(maxYears)
	return r, nil
}
