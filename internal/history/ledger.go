package history

import (
	"slices"
	"time"
)

// DefaultCapacity is the number of entries kept when none is configured
const DefaultCapacity = 50

// Ledger is an immutable, capacity-bounded list of entries, newest first.
// Every mutating method returns a new Ledger and leaves the receiver as is,
// so snapshots holding an older Ledger never observe later changes.
type Ledger struct {
	entries  []Entry
	capacity int
}

// NewLedger returns an empty ledger. A non-positive capacity uses DefaultCapacity.
func NewLedger(capacity int) Ledger {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return Ledger{capacity: capacity}
}

// Seed returns a ledger holding entries (already newest first), truncated
// to capacity. Used to restore persisted history on startup.
func Seed(capacity int, entries []Entry) Ledger {
	l := NewLedger(capacity)
	n := min(len(entries), l.capacity)
	l.entries = slices.Clone(entries[:n])
	return l
}

// Append records a new execution at the front, discarding the oldest
// entry when the ledger is full.
func (l Ledger) Append(sql string, rowCount int, at time.Time) (Ledger, Entry) {
	e := NewEntry(sql, rowCount, at)
	return l.Prepend(e), e
}

// Prepend inserts an existing entry at the front
func (l Ledger) Prepend(e Entry) Ledger {
	capacity := l.Capacity()
	n := min(len(l.entries)+1, capacity)

	next := make([]Entry, 0, n)
	next = append(next, e)
	next = append(next, l.entries[:n-1]...)
	return Ledger{entries: next, capacity: capacity}
}

// Remove returns the ledger without the entry id. ok is false when id is unknown.
func (l Ledger) Remove(id string) (Ledger, bool) {
	i := slices.IndexFunc(l.entries, func(e Entry) bool { return e.ID == id })
	if i < 0 {
		return l, false
	}
	return Ledger{entries: slices.Delete(slices.Clone(l.entries), i, i+1), capacity: l.Capacity()}, true
}

// Clear returns an empty ledger with the same capacity
func (l Ledger) Clear() Ledger {
	return NewLedger(l.capacity)
}

// Entries returns a copy of the entries, newest first
func (l Ledger) Entries() []Entry {
	return slices.Clone(l.entries)
}

// Get looks up an entry by ID
func (l Ledger) Get(id string) (Entry, bool) {
	for _, e := range l.entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// At returns the i-th entry, 0 being the newest
func (l Ledger) At(i int) (Entry, bool) {
	if i < 0 || i >= len(l.entries) {
		return Entry{}, false
	}
	return l.entries[i], true
}

func (l Ledger) Len() int { return len(l.entries) }

// Capacity returns the maximum number of entries kept
func (l Ledger) Capacity() int {
	if l.capacity <= 0 {
		return DefaultCapacity
	}
	return l.capacity
}
