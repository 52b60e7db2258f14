package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/rs/zerolog"
)

// DefaultSlowQueryThreshold is the duration above which a query is logged
// at warn level.
const DefaultSlowQueryThreshold = 50 * time.Millisecond

// TimedDB wraps a *sql.DB to log slow queries.
// Satisfies the SQLDB interface so it can be passed to any store constructor.
type TimedDB struct {
	db        *sql.DB
	log       zerolog.Logger
	threshold time.Duration
}

// Compile-time check that *TimedDB satisfies SQLDB.
var _ SQLDB = (*TimedDB)(nil)

// NewTimedDB wraps a *sql.DB with timing instrumentation.
// PRE: db is a valid database connection
// POST: Returns a TimedDB that logs queries above threshold at warn level
func NewTimedDB(db *sql.DB, log zerolog.Logger, threshold time.Duration) *TimedDB {
	if threshold <= 0 {
		threshold = DefaultSlowQueryThreshold
	}
	return &TimedDB{db: db, log: log, threshold: threshold}
}

// RawDB returns the underlying *sql.DB (needed for schema init and pool
// config).
func (t *TimedDB) RawDB() *sql.DB {
	return t.db
}

func (t *TimedDB) logQuery(op string, start time.Time) {
	elapsed := time.Since(start)
	if elapsed >= t.threshold {
		t.log.Warn().Str("op", op).Dur("duration", elapsed).Msg("slow query")
	} else {
		t.log.Debug().Str("op", op).Dur("duration", elapsed).Msg("query")
	}
}

// ExecContext wraps sql.DB.ExecContext with timing.
func (t *TimedDB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	start := time.Now()
	result, err := t.db.ExecContext(ctx, query, args...)
	t.logQuery("ExecContext", start)
	return result, err
}

// QueryContext wraps sql.DB.QueryContext with timing.
func (t *TimedDB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	start := time.Now()
	rows, err := t.db.QueryContext(ctx, query, args...)
	t.logQuery("QueryContext", start)
	return rows, err
}

// QueryRowContext wraps sql.DB.QueryRowContext with timing.
func (t *TimedDB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	start := time.Now()
	row := t.db.QueryRowContext(ctx, query, args...)
	t.logQuery("QueryRowContext", start)
	return row
}

// Close closes the underlying database connection.
func (t *TimedDB) Close() error {
	return t.db.Close()
}
