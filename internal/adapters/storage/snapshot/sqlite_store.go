package snapshot

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"arenaboard/internal/adapters/storage"
	domain "arenaboard/internal/domain/planning"
)

// DefaultKey is the slot name the board persists under.
const DefaultKey = "bourgo_arena_planning"

// SQLiteStore implements Store using a single SQLite row per slot key.
type SQLiteStore struct {
	db  storage.SQLDB
	key string
}

// NewSQLiteStore creates a snapshot store bound to the given slot key.
// An empty key falls back to DefaultKey.
func NewSQLiteStore(db storage.SQLDB, key string) *SQLiteStore {
	if key == "" {
		key = DefaultKey
	}
	return &SQLiteStore{db: db, key: key}
}

// Load reads the snapshot from the slot.
// PRE: schema has been initialized
// POST: Returns the stored snapshot, ErrNotFound if the slot is empty, or a
// decode error if the stored payload is corrupt
func (s *SQLiteStore) Load(ctx context.Context) (domain.Snapshot, error) {
	row := s.db.QueryRowContext(ctx, "SELECT data FROM planning_slot WHERE key = ?", s.key)
	var data string
	if err := row.Scan(&data); err != nil {
		if err == sql.ErrNoRows {
			return domain.Snapshot{}, ErrNotFound
		}
		return domain.Snapshot{}, err
	}
	var snap domain.Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return domain.Snapshot{}, fmt.Errorf("corrupt snapshot in slot %s: %w", s.key, err)
	}
	return snap, nil
}

// Save overwrites the slot with the given snapshot.
// PRE: value is the full live state
// POST: Slot holds exactly the JSON serialization of value
func (s *SQLiteStore) Save(ctx context.Context, value domain.Snapshot) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		"INSERT INTO planning_slot (key, data, updated_at) VALUES (?, ?, ?) ON CONFLICT(key) DO UPDATE SET data=excluded.data, updated_at=excluded.updated_at",
		s.key, string(data), time.Now().UTC().Format(time.RFC3339),
	)
	return err
}
