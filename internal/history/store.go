package history

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/adrg/xdg"
	_ "github.com/mattn/go-sqlite3"
)

// Store persists history entries in sqlite
type Store struct {
	db       *sql.DB
	capacity int
}

// DefaultPath returns the history database location under the XDG data dir
func DefaultPath() (string, error) {
	return xdg.DataFile("ezquery/history.db")
}

// NewStore opens (creating if needed) the history database at path.
// The store keeps at most capacity entries.
func NewStore(path string, capacity int) (*Store, error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS history (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			query TEXT NOT NULL,
			executed_at INTEGER NOT NULL,
			row_count INTEGER NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create history table: %w", err)
	}

	return &Store{db: db, capacity: capacity}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Add inserts an entry and prunes anything beyond capacity
func (s *Store) Add(e Entry) error {
	_, err := s.db.Exec(`
		INSERT INTO history (id, query, executed_at, row_count)
		VALUES (?, ?, ?, ?)
	`, e.ID, e.SQL, e.Timestamp.UnixMilli(), e.RowCount)
	if err != nil {
		return fmt.Errorf("insert history entry: %w", err)
	}
	return s.enforceLimit()
}

// enforceLimit keeps only the most recent capacity entries
func (s *Store) enforceLimit() error {
	_, err := s.db.Exec(`
		DELETE FROM history
		WHERE seq NOT IN (
			SELECT seq FROM history
			ORDER BY seq DESC
			LIMIT ?
		)
	`, s.capacity)
	return err
}

// Recent returns up to limit entries, newest first
func (s *Store) Recent(limit int) ([]Entry, error) {
	rows, err := s.db.Query(`
		SELECT id, query, executed_at, row_count
		FROM history
		ORDER BY seq DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e  Entry
			ms int64
		)
		if err := rows.Scan(&e.ID, &e.SQL, &ms, &e.RowCount); err != nil {
			return nil, err
		}
		e.Timestamp = time.UnixMilli(ms)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Delete removes a single entry by ID
func (s *Store) Delete(id string) error {
	_, err := s.db.Exec("DELETE FROM history WHERE id = ?", id)
	return err
}

// Clear removes every entry
func (s *Store) Clear() error {
	_, err := s.db.Exec("DELETE FROM history")
	return err
}

// Count returns the number of stored entries
func (s *Store) Count() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM history").Scan(&count)
	return count, err
}

// Load seeds a Ledger from the persisted entries
func (s *Store) Load() (Ledger, error) {
	entries, err := s.Recent(s.capacity)
	if err != nil {
		return NewLedger(s.capacity), err
	}
	return Seed(s.capacity, entries), nil
}
