package boardstate

import (
	"context"
	"sync"

	"taskboard/internal/client"
	"taskboard/internal/dnd"

	"github.com/google/uuid"
)

// Store is the live Client Drag State for one board: the optimistic mirror
// plus the syncer that reconciles it. Drops commit locally first and the
// reconciling calls follow; a failed call leaves the optimistic state in
// place until Hydrate is called again.
type Store struct {
	boardID uuid.UUID
	syncer  *Syncer

	mu    sync.Mutex
	lists []client.List
}

func NewStore(boardID uuid.UUID, syncer *Syncer) *Store {
	return &Store{boardID: boardID, syncer: syncer}
}

// Hydrate replaces the mirror with the server's authoritative state.
func (st *Store) Hydrate(ctx context.Context) error {
	lists, err := st.syncer.Reload(ctx, st.boardID)
	if err != nil {
		return err
	}

	st.mu.Lock()
	st.lists = lists
	st.mu.Unlock()
	return nil
}

// Lists returns an immutable snapshot for rendering.
func (st *Store) Lists() []client.List {
	st.mu.Lock()
	defer st.mu.Unlock()
	return CloneLists(st.lists)
}

// Drop handles a completed drag gesture: commit the new order locally, then
// issue the reconciling calls. The returned error reports reconciliation
// failures; the local state keeps the optimistic result regardless.
func (st *Store) Drop(ctx context.Context, active, over dnd.NodeID) error {
	st.mu.Lock()
	next, plan, err := ApplyDrop(st.boardID, st.lists, active, over)
	if err != nil {
		st.mu.Unlock()
		return err
	}
	st.lists = next
	st.mu.Unlock()

	return st.syncer.Apply(ctx, plan)
}
