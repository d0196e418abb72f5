package state

import (
	"sync"

	"github.com/five82/lexicon/internal/entry"
)

// Store owns the projection. Dispatch runs each transition to completion
// before the next, so callers on any goroutine see a single ordered history.
type Store struct {
	mu       sync.RWMutex
	proj     Projection
	revision uint64
	closed   bool
	changes  chan struct{}
}

// NewStore returns a store holding an empty projection.
func NewStore() *Store {
	return &Store{
		proj:    Projection{Entries: []entry.Entry{}},
		changes: make(chan struct{}, 1),
	}
}

// Dispatch applies a and reports whether it was applied. After Close every
// dispatch is dropped, which makes late timers and pushes harmless.
func (s *Store) Dispatch(a Action) bool {
	if a == nil {
		return false
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false
	}
	s.proj = Reduce(s.proj, a)
	if affectsView(a) {
		s.revision++
	}
	s.mu.Unlock()

	s.signal()
	return true
}

// Snapshot returns a deep copy of the current projection.
func (s *Store) Snapshot() Projection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.proj.Clone()
}

// View returns the entries and search text together with the revision they
// belong to. The revision only moves when one of them may have changed.
func (s *Store) View() (entries []entry.Entry, search string, revision uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneEntries(s.proj.Entries), s.proj.SearchText, s.revision
}

// Pushes returns how many ReplaceAll actions have been applied.
func (s *Store) Pushes() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.proj.Pushes
}

// Revision returns the current view revision.
func (s *Store) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// Changes delivers a signal after dispatches. Signals coalesce; readers
// should take a fresh Snapshot on each one.
func (s *Store) Changes() <-chan struct{} {
	return s.changes
}

// Close stops accepting dispatches. The last projection stays readable.
func (s *Store) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.signal()
}

// Closed reports whether Close has been called.
func (s *Store) Closed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

func (s *Store) signal() {
	select {
	case s.changes <- struct{}{}:
	default:
	}
}
