// Package history keeps the bounded, most-recent-first record of executed
// queries and optionally persists it to sqlite.
package history

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Entry is one successful execution. Entries are never edited after creation.
type Entry struct {
	ID        string
	SQL       string
	Timestamp time.Time
	RowCount  int
}

// NewEntry stamps a fresh entry with a unique ID
func NewEntry(sql string, rowCount int, at time.Time) Entry {
	return Entry{
		ID:        uuid.NewString(),
		SQL:       sql,
		Timestamp: at,
		RowCount:  rowCount,
	}
}

// Preview returns the query collapsed onto one line and cut to maxLen runes
func (e Entry) Preview(maxLen int) string {
	q := strings.Join(strings.Fields(e.SQL), " ")
	r := []rune(q)
	if maxLen > 3 && len(r) > maxLen {
		return string(r[:maxLen-3]) + "..."
	}
	return q
}
