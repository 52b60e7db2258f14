package snapshot

import (
	"context"
	"errors"

	domain "arenaboard/internal/domain/planning"
)

// ErrNotFound is returned by Load when the slot holds no snapshot yet.
var ErrNotFound = errors.New("snapshot not found")

// Store persists the whole schedule snapshot in a single named slot.
// Writes overwrite the slot wholesale; there are no partial updates.
type Store interface {
	Load(ctx context.Context) (domain.Snapshot, error)
	Save(ctx context.Context, value domain.Snapshot) error
}
