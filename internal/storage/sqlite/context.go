// ABOUTME: User context storage operations for SQLite
// ABOUTME: Key/value upsert with category grouping, last write wins
package sqlite

import (
	"database/sql"
	"time"

	"github.com/harper/inbox-triage/internal/models"
)

// ContextStore handles learned user preference persistence
type ContextStore struct {
	db *DB
}

// NewContextStore creates a new ContextStore
func NewContextStore(db *DB) *ContextStore {
	return &ContextStore{db: db}
}

// Set upserts a context entry. Writing an existing key overwrites the value,
// category, and timestamp.
func (s *ContextStore) Set(key, value, category string) error {
	if category == "" {
		category = models.DefaultCategory
	}

	_, err := s.db.Exec(`
		INSERT INTO user_context (key, value, category, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			category = excluded.category,
			updated_at = excluded.updated_at
	`, key, value, category, time.Now().UTC())

	return err
}

// Get returns the value for a key. A missing key is reported through the
// found flag, never as an error.
func (s *ContextStore) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM user_context WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// GetByCategory returns all key/value pairs sharing a category.
func (s *ContextStore) GetByCategory(category string) (map[string]string, error) {
	rows, err := s.db.Query(`SELECT key, value FROM user_context WHERE category = ?`, category)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	entries := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		entries[key] = value
	}

	return entries, rows.Err()
}

// ListAll returns every context entry, newest first (for export).
func (s *ContextStore) ListAll() ([]models.ContextEntry, error) {
	rows, err := s.db.Query(`
		SELECT key, value, category, updated_at
		FROM user_context
		ORDER BY updated_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var entries []models.ContextEntry
	for rows.Next() {
		var entry models.ContextEntry
		if err := rows.Scan(&entry.Key, &entry.Value, &entry.Category, &entry.UpdatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
