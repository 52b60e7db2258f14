package storage

import (
	"bytes"
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	_ "modernc.org/sqlite"
)

func openTimedTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	db.Exec("CREATE TABLE test (id TEXT PRIMARY KEY, val TEXT)")
	return db
}

func TestTimedDB_ExecAndQuery(t *testing.T) {
	db := openTimedTestDB(t)
	tdb := NewTimedDB(db, zerolog.Nop(), 0)
	ctx := context.Background()

	if _, err := tdb.ExecContext(ctx, "INSERT INTO test (id, val) VALUES (?, ?)", "1", "hello"); err != nil {
		t.Fatalf("ExecContext: %v", err)
	}

	rows, err := tdb.QueryContext(ctx, "SELECT id, val FROM test")
	if err != nil {
		t.Fatalf("QueryContext: %v", err)
	}
	defer rows.Close()
	count := 0
	for rows.Next() {
		count++
	}
	if count != 1 {
		t.Errorf("rows = %d, want 1", count)
	}

	var val string
	if err := tdb.QueryRowContext(ctx, "SELECT val FROM test WHERE id = ?", "1").Scan(&val); err != nil {
		t.Fatalf("QueryRowContext: %v", err)
	}
	if val != "hello" {
		t.Errorf("val = %q, want hello", val)
	}
}

// TestTimedDB_ErrorPassthrough verifies SQL errors are returned unchanged.
// Swallowing errors here would corrupt data.
func TestTimedDB_ErrorPassthrough(t *testing.T) {
	db := openTimedTestDB(t)
	tdb := NewTimedDB(db, zerolog.Nop(), 0)
	ctx := context.Background()

	if _, err := tdb.ExecContext(ctx, "INSERT INTO nonexistent_table VALUES (?)"); err == nil {
		t.Fatal("expected error from invalid SQL, got nil")
	}

	var val string
	err := tdb.QueryRowContext(ctx, "SELECT val FROM test WHERE id = ?", "missing").Scan(&val)
	if err != sql.ErrNoRows {
		t.Errorf("expected sql.ErrNoRows, got %v", err)
	}
}

// TestTimedDB_CancelledContext verifies cancellation surfaces as an error.
func TestTimedDB_CancelledContext(t *testing.T) {
	db := openTimedTestDB(t)
	tdb := NewTimedDB(db, zerolog.Nop(), 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := tdb.ExecContext(ctx, "INSERT INTO test (id, val) VALUES (?, ?)", "1", "hello"); err == nil {
		t.Fatal("expected error from cancelled context, got nil")
	}
}

// TestTimedDB_SlowQueryLogged verifies queries over the threshold produce a
// warn entry.
func TestTimedDB_SlowQueryLogged(t *testing.T) {
	db := openTimedTestDB(t)
	var buf bytes.Buffer
	log := zerolog.New(&buf)
	// Nanosecond threshold: every query counts as slow.
	tdb := NewTimedDB(db, log, time.Nanosecond)

	if _, err := tdb.ExecContext(context.Background(), "INSERT INTO test (id, val) VALUES (?, ?)", "1", "x"); err != nil {
		t.Fatalf("ExecContext: %v", err)
	}
	if !strings.Contains(buf.String(), "slow query") {
		t.Errorf("log output %q missing slow query entry", buf.String())
	}
}

// TestTimedDB_ResultPassthrough verifies sql.Result values are returned
// unchanged through the wrapper.
func TestTimedDB_ResultPassthrough(t *testing.T) {
	db := openTimedTestDB(t)
	tdb := NewTimedDB(db, zerolog.Nop(), 0)

	result, err := tdb.ExecContext(context.Background(), "INSERT INTO test (id, val) VALUES (?, ?)", "r1", "result")
	if err != nil {
		t.Fatalf("ExecContext: %v", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		t.Fatalf("RowsAffected: %v", err)
	}
	if rows != 1 {
		t.Errorf("RowsAffected = %d, want 1", rows)
	}
}

// TestTimedDB_RawDB verifies RawDB returns the original *sql.DB.
func TestTimedDB_RawDB(t *testing.T) {
	db := openTimedTestDB(t)
	tdb := NewTimedDB(db, zerolog.Nop(), 0)

	if tdb.RawDB() != db {
		t.Error("RawDB() should return the original *sql.DB")
	}
}
