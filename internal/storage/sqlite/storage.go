// ABOUTME: Unified Storage layer that wraps all SQLite stores
// ABOUTME: Owns the connection lifecycle and the prompt-context formatting
package sqlite

import (
	"fmt"
	"strings"
	"time"

	"github.com/harper/inbox-triage/internal/models"
)

// NoHistorySentinel is returned by FormatAuthorHistory for unknown senders.
const NoHistorySentinel = "No previous interactions with this sender."

// DefaultHistoryLimit bounds the prompt-context digest.
const DefaultHistoryLimit = 3

// Storage manages all persistent triage memory using SQLite
type Storage struct {
	db        *DB
	emails    *EmailStore
	context   *ContextStore
	patterns  *PatternStore
	templates *TemplateStore
}

// NewStorage initializes storage at the default XDG path
func NewStorage() (*Storage, error) {
	return NewStorageWithPath(DefaultDBPath())
}

// NewStorageWithPath initializes storage with a custom database path
func NewStorageWithPath(dbPath string) (*Storage, error) {
	db, err := Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return newStorage(db), nil
}

// NewStorageInMemory creates an in-memory storage (for testing)
func NewStorageInMemory() (*Storage, error) {
	db, err := OpenInMemory()
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}
	return newStorage(db), nil
}

func newStorage(db *DB) *Storage {
	return &Storage{
		db:        db,
		emails:    NewEmailStore(db),
		context:   NewContextStore(db),
		patterns:  NewPatternStore(db),
		templates: NewTemplateStore(db),
	}
}

// Close closes the database connection
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the database file path
func (s *Storage) Path() string {
	return s.db.Path()
}

// Emails returns the email decision store
func (s *Storage) Emails() *EmailStore {
	return s.emails
}

// Context returns the user context store
func (s *Storage) Context() *ContextStore {
	return s.context
}

// Patterns returns the conversation pattern store
func (s *Storage) Patterns() *PatternStore {
	return s.patterns
}

// Templates returns the response template store
func (s *Storage) Templates() *TemplateStore {
	return s.templates
}

// FormatAuthorHistory renders up to limit prior decisions for an author as a
// prompt-context digest, newest first, one line per record:
//
//	- 2025-06-30: RESPOND - Meeting request for project discussion
//
// Unknown authors yield NoHistorySentinel. A limit <= 0 uses the default.
func (s *Storage) FormatAuthorHistory(author string, limit int) (string, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	history, err := s.emails.GetAuthorHistory(author, limit)
	if err != nil {
		return "", fmt.Errorf("failed to load author history: %w", err)
	}

	if len(history) == 0 {
		return NoHistorySentinel, nil
	}

	lines := make([]string, 0, len(history))
	for _, record := range history {
		lines = append(lines, fmt.Sprintf("- %s: %s - %s",
			record.Timestamp.UTC().Format("2006-01-02"),
			strings.ToUpper(string(record.Classification)),
			record.ThreadSummary))
	}

	return strings.Join(lines, "\n"), nil
}

// PurgeOlderThan removes email records older than the retention window.
func (s *Storage) PurgeOlderThan(days int) (int64, error) {
	return s.emails.PurgeOlderThan(days)
}

// DailySummary reports classification counts for one calendar date.
func (s *Storage) DailySummary(date time.Time) (map[string]int, error) {
	return s.emails.DailySummary(date)
}

// WeeklyBreakdown reports the zero-filled day-by-classification grid for the
// 7 days up to asOf.
func (s *Storage) WeeklyBreakdown(asOf time.Time) (map[string]map[string]int, error) {
	return s.emails.WeeklyBreakdown(asOf)
}

// ObservePattern records one (domain, classification) observation.
func (s *Storage) ObservePattern(domain string, cls models.Classification, keywords []string) error {
	return s.patterns.Observe(domain, cls, keywords)
}
