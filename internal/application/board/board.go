// Package board holds the scheduling state engine: the in-memory schedule
// and its reference entities, mutation operations with cascading reference
// cleanup, a bounded linear undo/redo history over full snapshots, and
// synchronous best-effort persistence to a durable slot.
package board

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	slotStore "arenaboard/internal/adapters/storage/snapshot"
	"arenaboard/internal/domain/planning"
)

// maxHistory bounds how many mutations can be undone. When the bound is
// exceeded the oldest entry is evicted.
const maxHistory = 10

// Board is the scheduling store. It is constructed once at application
// start and injected into every consumer; a mutex serializes mutations,
// reads and the autosave tick so no caller ever observes a half-applied
// mutation.
//
// Mutation contract: truncate any redo tail, record the pre-mutation state
// in history, apply the change, persist the new live state synchronously.
// Persistence is best-effort — a write failure is logged and swallowed,
// never surfaced to the caller.
type Board struct {
	mu    sync.Mutex
	state planning.Snapshot

	// history[index] always equals the live state, so undo restores
	// history[index-1] and redo restores history[index+1].
	history []planning.Snapshot
	index   int

	slot slotStore.Store
	log  zerolog.Logger
}

// New loads the snapshot from the durable slot, falling back to the
// built-in default when the slot is empty or unreadable.
// PRE: slot is non-nil
// POST: Board holds a live snapshot and an empty undo history
func New(ctx context.Context, slot slotStore.Store, log zerolog.Logger) *Board {
	state, err := slot.Load(ctx)
	switch {
	case err == slotStore.ErrNotFound:
		state = planning.DefaultSnapshot()
	case err != nil:
		log.Warn().Err(err).Msg("loading planning slot failed, using defaults")
		state = planning.DefaultSnapshot()
	}

	b := &Board{
		state:   state,
		history: []planning.Snapshot{state.Clone()},
		index:   0,
		slot:    slot,
		log:     log,
	}
	return b
}

// Snapshot returns a deep copy of the current live state. This is the read
// path for both the admin grid and the display view, and the export
// operation (no side effect).
func (b *Board) Snapshot() planning.Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state.Clone()
}

// CanUndo reports whether an undo step is available.
func (b *Board) CanUndo() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.index > 0
}

// CanRedo reports whether a redo step is available.
func (b *Board) CanRedo() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.index < len(b.history)-1
}

// Undo steps the live state back to the previous history entry.
// POST: Returns false (safe no-op) when already at the earliest entry
func (b *Board) Undo(ctx context.Context) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.index == 0 {
		return false
	}
	b.index--
	b.state = b.history[b.index].Clone()
	b.persist(ctx)
	return true
}

// Redo steps the live state forward to the next history entry.
// POST: Returns false (safe no-op) when already at the newest entry
func (b *Board) Redo(ctx context.Context) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.index >= len(b.history)-1 {
		return false
	}
	b.index++
	b.state = b.history[b.index].Clone()
	b.persist(ctx)
	return true
}

// Reset replaces the live state with the built-in default snapshot and,
// unlike every other mutator, clears the undo/redo history. An explicit
// "start completely over".
func (b *Board) Reset(ctx context.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = planning.DefaultSnapshot()
	b.history = []planning.Snapshot{b.state.Clone()}
	b.index = 0
	b.persist(ctx)
	b.log.Info().Msg("planning reset to defaults")
}

// LoadSnapshot replaces the entire live state with the supplied snapshot
// verbatim. Field-level validation happens at the import boundary, not
// here; history is recorded like any other mutation.
func (b *Board) LoadSnapshot(ctx context.Context, s planning.Snapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = s.Clone()
	b.commit(ctx)
	b.log.Info().Int("courses", len(s.Planning)).Msg("planning imported")
}

// Autosave writes the current snapshot to the durable slot. It runs on a
// fixed interval independent of mutation activity, as a belt-and-suspenders
// measure on top of the per-mutation write.
func (b *Board) Autosave(ctx context.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.persist(ctx)
}

// commit records the post-mutation live state in history (discarding any
// not-yet-redone future first), evicts the oldest entry past the bound,
// and persists. Callers hold b.mu.
func (b *Board) commit(ctx context.Context) {
	b.history = append(b.history[:b.index+1], b.state.Clone())
	b.index = len(b.history) - 1
	if len(b.history) > maxHistory+1 {
		b.history = b.history[1:]
		b.index--
	}
	b.persist(ctx)
}

// persist writes the live state to the slot, best-effort. Callers hold b.mu.
func (b *Board) persist(ctx context.Context) {
	if err := b.slot.Save(ctx, b.state); err != nil {
		b.log.Error().Err(err).Msg("saving planning slot failed")
	}
}

func newID() string {
	return uuid.New().String()
}
