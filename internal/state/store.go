package state

import "sync"

// Store holds one ReaderState and applies actions through the reducer.
//
// A Store is constructed explicitly and handed to whatever needs it; there is
// no package-level instance. Facade calls run on the host thread, but search
// results are folded in from transport goroutines, so reads and writes are
// guarded.
type Store struct {
	mu    sync.RWMutex
	state ReaderState
}

// NewStore creates a store seeded with mount-time defaults.
func NewStore(bookKey string) *Store {
	return &Store{state: NewReaderState(bookKey)}
}

// Dispatch applies one action.
func (st *Store) Dispatch(a Action) {
	st.mu.Lock()
	st.state = Reduce(st.state, a)
	st.mu.Unlock()
}

// Snapshot returns the current state. Maps may be shared with the store,
// but dispatches never mutate a published map in place, so what a snapshot
// holds stays stable.
func (st *Store) Snapshot() ReaderState {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.state
}
