// ABOUTME: Conversation pattern storage operations for SQLite
// ABOUTME: Incremental (domain, classification) aggregation with JSON keyword arrays
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/harper/inbox-triage/internal/models"
)

// PatternStore handles sender-domain behavior aggregation
type PatternStore struct {
	db *DB
}

// NewPatternStore creates a new PatternStore
func NewPatternStore(db *DB) *PatternStore {
	return &PatternStore{db: db}
}

// Observe records one observation of a (domain, classification) pair. On
// repeat observation the frequency increments, keywords are replaced by the
// latest set, and last_seen advances without ever regressing. The whole
// read-then-write happens in a single statement, so there are no lost
// increments even with concurrent writers.
func (s *PatternStore) Observe(authorDomain string, classification models.Classification, keywords []string) error {
	if !classification.Valid() {
		return fmt.Errorf("invalid classification %q", classification)
	}

	keywordsJSON, err := json.Marshal(keywords)
	if err != nil {
		return fmt.Errorf("failed to marshal keywords: %w", err)
	}
	if keywords == nil {
		keywordsJSON = []byte("[]")
	}

	_, err = s.db.Exec(`
		INSERT INTO conversation_patterns
			(author_domain, typical_classification, keywords, frequency, last_seen)
		VALUES (?, ?, ?, 1, ?)
		ON CONFLICT(author_domain, typical_classification) DO UPDATE SET
			frequency = frequency + 1,
			keywords = excluded.keywords,
			last_seen = MAX(last_seen, excluded.last_seen)
	`, authorDomain, string(classification), string(keywordsJSON), time.Now().UTC())

	return err
}

// GetForDomain returns all patterns for a domain, frequency descending.
func (s *PatternStore) GetForDomain(authorDomain string) ([]models.ConversationPattern, error) {
	rows, err := s.db.Query(`
		SELECT author_domain, typical_classification, keywords, frequency, last_seen
		FROM conversation_patterns
		WHERE author_domain = ?
		ORDER BY frequency DESC
	`, authorDomain)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return s.scanPatterns(rows)
}

// ListAll returns every pattern, frequency descending (for export).
func (s *PatternStore) ListAll() ([]models.ConversationPattern, error) {
	rows, err := s.db.Query(`
		SELECT author_domain, typical_classification, keywords, frequency, last_seen
		FROM conversation_patterns
		ORDER BY frequency DESC, author_domain ASC
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return s.scanPatterns(rows)
}

// scanPatterns scans rows into a slice of ConversationPattern
func (s *PatternStore) scanPatterns(rows *sql.Rows) ([]models.ConversationPattern, error) {
	var patterns []models.ConversationPattern

	for rows.Next() {
		var (
			pattern      models.ConversationPattern
			cls          string
			keywordsJSON sql.NullString
		)

		err := rows.Scan(&pattern.AuthorDomain, &cls, &keywordsJSON,
			&pattern.Frequency, &pattern.LastSeen)
		if err != nil {
			return nil, err
		}

		pattern.TypicalClassification = models.Classification(cls)
		pattern.Keywords = []string{}
		if keywordsJSON.Valid && keywordsJSON.String != "" {
			if err := json.Unmarshal([]byte(keywordsJSON.String), &pattern.Keywords); err != nil {
				pattern.Keywords = []string{}
			}
		}

		patterns = append(patterns, pattern)
	}

	return patterns, rows.Err()
}
