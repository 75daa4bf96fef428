// ABOUTME: Tests for database connection and schema initialization
// ABOUTME: Verifies open, close, and table creation for all four tables
package sqlite

import (
	"path/filepath"
	"testing"
	"time"
)

func TestOpenInMemory(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	if db.Path() != ":memory:" {
		t.Errorf("Path() = %v, want :memory:", db.Path())
	}

	// All four tables should exist after schema init
	tables := []string{"email_history", "user_context", "conversation_patterns", "response_templates"}
	for _, table := range tables {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		if err != nil {
			t.Errorf("table %s not created: %v", table, err)
		}
	}

	var version int
	if err := db.QueryRow(`PRAGMA user_version`).Scan(&version); err != nil {
		t.Fatalf("user_version scan error = %v", err)
	}
	if version != SchemaVersion {
		t.Errorf("user_version = %d, want %d", version, SchemaVersion)
	}
}

func TestTimestampsParseableByDateFunction(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	// The date-windowed queries all go through DATE(timestamp); a time.Time
	// bound through the driver must land in a layout DATE() understands.
	when := time.Date(2026, 8, 18, 14, 30, 0, 0, time.UTC)
	_, err = db.Exec(`
		INSERT INTO email_history (email_id, author, classification, timestamp)
		VALUES (?, ?, ?, ?)
	`, "date-fn-1", "a@b.com", "notify", when)
	if err != nil {
		t.Fatalf("insert error = %v", err)
	}

	var day string
	err = db.QueryRow(`SELECT DATE(timestamp) FROM email_history WHERE email_id = ?`, "date-fn-1").Scan(&day)
	if err != nil {
		t.Fatalf("DATE(timestamp) scan error = %v", err)
	}
	if day != "2026-08-18" {
		t.Errorf("DATE(timestamp) = %q, want 2026-08-18", day)
	}
}

func TestOpenCreatesDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "triage.db")

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	if db.Path() != path {
		t.Errorf("Path() = %v, want %v", db.Path(), path)
	}
}

func TestOpenIdempotentSchema(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "triage.db")

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	// Re-opening must not fail on existing tables
	db2, err := Open(path)
	if err != nil {
		t.Fatalf("second Open() error = %v", err)
	}
	defer func() { _ = db2.Close() }()
}
