// Package store is the single-writer state container for a query session.
// Readers get whole snapshots by value; every change goes through a named
// transition that swaps in a new snapshot under the lock.
package store

import (
	"log/slog"
	"sync"
	"time"

	"github.com/nhath/ezquery/internal/catalog"
	"github.com/nhath/ezquery/internal/history"
	"github.com/nhath/ezquery/internal/results"
)

// Snapshot is an immutable view of the session. Result and History are
// shared between snapshots and must not be modified by readers.
type Snapshot struct {
	Version         uint64
	Generation      uint64
	Status          Status
	Result          *results.ResultSet
	View            results.ViewState
	History         history.Ledger
	CurrentSQL      string
	SelectedQueryID string
}

// Page runs the display pipeline over the snapshot's result
func (s Snapshot) Page() results.Page {
	return results.Transform(s.Result, s.View)
}

// Visible returns the filtered and sorted rows without pagination
func (s Snapshot) Visible() []results.Record {
	return results.Filtered(s.Result, s.View)
}

// Store owns the current Snapshot
type Store struct {
	mu      sync.Mutex
	snap    Snapshot
	catalog *catalog.Catalog
	subs    []chan struct{}
	logger  *slog.Logger
	now     func() time.Time
}

// Option configures a Store
type Option func(*Store)

// WithCatalog sets the predefined queries; the first becomes the current query
func WithCatalog(c *catalog.Catalog) Option {
	return func(s *Store) { s.catalog = c }
}

// WithHistory seeds the history ledger
func WithHistory(l history.Ledger) Option {
	return func(s *Store) { s.snap.History = l }
}

// WithView sets the initial view preferences
func WithView(v results.ViewState) Option {
	return func(s *Store) { s.snap.View = v }
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithClock overrides the time source used for history timestamps
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New returns a store in the Idle state
func New(opts ...Option) *Store {
	s := &Store{
		catalog: catalog.New(),
		logger:  slog.Default(),
		now:     time.Now,
		snap: Snapshot{
			Status:  Idle(),
			View:    results.NewViewState(50, results.Paginated),
			History: history.NewLedger(history.DefaultCapacity),
		},
	}
	for _, opt := range opts {
		opt(s)
	}

	first := s.catalog.First()
	s.snap.CurrentSQL = first.SQL
	s.snap.SelectedQueryID = first.ID
	return s
}

// Snapshot returns the current state
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

// Catalog returns the predefined queries
func (s *Store) Catalog() *catalog.Catalog {
	return s.catalog
}

// Subscribe returns a channel that receives a signal after each transition.
// Pair each call with Unsubscribe once the reader is done.
// Signals are coalesced: a slow reader sees one pending signal, not one per change.
func (s *Store) Subscribe() <-chan struct{} {
	ch := make(chan struct{}, 1)
	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()
	return ch
}

// Unsubscribe stops notifications on ch. Unknown channels are ignored.
// update ranges over subs outside the lock, so the slice is replaced, never edited in place.
func (s *Store) Unsubscribe(ch <-chan struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := make([]chan struct{}, 0, len(s.subs))
	for _, c := range s.subs {
		if (<-chan struct{})(c) != ch {
			kept = append(kept, c)
		}
	}
	s.subs = kept
}

// update applies fn to a copy of the snapshot and publishes the result.
// fn returning false leaves the store untouched.
func (s *Store) update(fn func(*Snapshot) bool) bool {
	s.mu.Lock()
	next := s.snap
	if !fn(&next) {
		s.mu.Unlock()
		return false
	}
	next.Version = s.snap.Version + 1
	s.snap = next
	subs := s.subs
	s.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	return true
}

// Begin enters Loading for a new execution and returns its generation.
// The previous result stays visible until the execution resolves.
func (s *Store) Begin() uint64 {
	var gen uint64
	s.update(func(n *Snapshot) bool {
		n.Generation++
		gen = n.Generation
		n.Status = Loading()
		return true
	})
	return gen
}

// Commit installs rs for generation gen and appends a history entry.
// A stale generation is discarded and reported as false.
func (s *Store) Commit(gen uint64, rs *results.ResultSet, sql string) (history.Entry, bool) {
	var entry history.Entry
	ok := s.update(func(n *Snapshot) bool {
		if gen != n.Generation {
			return false
		}
		n.Result = rs
		n.Status = Success()
		n.View = n.View.WithPage(1)
		n.History, entry = n.History.Append(sql, rs.RowCount, s.now())
		return true
	})
	if !ok {
		s.logger.Debug("discarding stale result", "generation", gen)
	}
	return entry, ok
}

// Fail records an error for generation gen, leaving the prior result in place
func (s *Store) Fail(gen uint64, msg string) bool {
	ok := s.update(func(n *Snapshot) bool {
		if gen != n.Generation {
			return false
		}
		n.Status = Failed(msg)
		return true
	})
	if !ok {
		s.logger.Debug("discarding stale error", "generation", gen, "error", msg)
	}
	return ok
}

// ClearResults drops the current result and error. An execution still in
// flight is not cancelled and will commit when it resolves.
func (s *Store) ClearResults() {
	s.update(func(n *Snapshot) bool {
		n.Result = nil
		if !n.Status.IsLoading() {
			n.Status = Idle()
		}
		n.View = n.View.WithPage(1).WithScroll(0)
		return true
	})
}

// SetSQL replaces the current query text
func (s *Store) SetSQL(sql string) {
	s.update(func(n *Snapshot) bool {
		if n.CurrentSQL == sql {
			return false
		}
		n.CurrentSQL = sql
		return true
	})
}

// SelectPredefined loads a catalog query into the editor
func (s *Store) SelectPredefined(id string) bool {
	q, ok := s.catalog.Find(id)
	if !ok {
		return false
	}
	return s.update(func(n *Snapshot) bool {
		n.SelectedQueryID = q.ID
		n.CurrentSQL = q.SQL
		return true
	})
}

// SelectHistory copies a history entry's SQL into the editor without running it
func (s *Store) SelectHistory(id string) bool {
	return s.update(func(n *Snapshot) bool {
		e, ok := n.History.Get(id)
		if !ok {
			return false
		}
		n.CurrentSQL = e.SQL
		return true
	})
}

// RemoveHistory drops one ledger entry
func (s *Store) RemoveHistory(id string) bool {
	return s.update(func(n *Snapshot) bool {
		next, ok := n.History.Remove(id)
		if !ok {
			return false
		}
		n.History = next
		return true
	})
}

// ClearHistory empties the ledger
func (s *Store) ClearHistory() {
	s.update(func(n *Snapshot) bool {
		n.History = n.History.Clear()
		return true
	})
}

// SetSearch sets the filter term and returns to page 1
func (s *Store) SetSearch(term string) {
	s.update(func(n *Snapshot) bool {
		if n.View.SearchTerm == term {
			return false
		}
		n.View = n.View.WithSearch(term)
		return true
	})
}

// ToggleSort applies a header click on col
func (s *Store) ToggleSort(col string) {
	s.update(func(n *Snapshot) bool {
		n.View = n.View.ToggleSort(col)
		return true
	})
}

// SetPage moves to page p (1-based)
func (s *Store) SetPage(p int) {
	s.update(func(n *Snapshot) bool {
		n.View = n.View.WithPage(p)
		return true
	})
}

// SetPageSize changes the page size and returns to page 1
func (s *Store) SetPageSize(size int) {
	s.update(func(n *Snapshot) bool {
		n.View = n.View.WithPageSize(size)
		return true
	})
}

// SetViewMode switches between paginated and virtual display
func (s *Store) SetViewMode(mode results.ViewMode) {
	s.update(func(n *Snapshot) bool {
		if n.View.ViewMode == mode {
			return false
		}
		n.View = n.View.WithMode(mode).WithScroll(0)
		return true
	})
}

// SetScroll sets the virtual scroll offset
func (s *Store) SetScroll(offset int) {
	s.update(func(n *Snapshot) bool {
		n.View = n.View.WithScroll(offset)
		return true
	})
}
