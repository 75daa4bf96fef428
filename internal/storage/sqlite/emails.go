// ABOUTME: Email decision storage operations for SQLite
// ABOUTME: Implements upsert, history, search, and aggregate queries over email_history
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/harper/inbox-triage/internal/models"
)

// SenderCount is one (author, count) pair from TopSenders.
type SenderCount struct {
	Author string `json:"author"`
	Count  int    `json:"count"`
}

// EmailStore handles email decision persistence
type EmailStore struct {
	db *DB
}

// NewEmailStore creates a new EmailStore
func NewEmailStore(db *DB) *EmailStore {
	return &EmailStore{db: db}
}

// Save upserts an email decision by email_id. Re-processing the same id
// overwrites the row, never duplicates it.
func (s *EmailStore) Save(record *models.EmailRecord) error {
	if !record.Classification.Valid() {
		return fmt.Errorf("invalid classification %q", record.Classification)
	}

	timestamp := record.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	_, err := s.db.Exec(`
		INSERT INTO email_history (email_id, author, subject, classification,
			reasoning, thread_summary, timestamp, response_sent, raw_content)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(email_id) DO UPDATE SET
			author = excluded.author,
			subject = excluded.subject,
			classification = excluded.classification,
			reasoning = excluded.reasoning,
			thread_summary = excluded.thread_summary,
			timestamp = excluded.timestamp,
			response_sent = excluded.response_sent,
			raw_content = excluded.raw_content
	`, record.EmailID, record.Author, record.Subject, string(record.Classification),
		record.Reasoning, record.ThreadSummary, timestamp.UTC(), record.ResponseSent,
		record.RawContent)

	return err
}

// GetAuthorHistory returns up to limit records for an author, newest first.
// An author with no history yields an empty slice.
func (s *EmailStore) GetAuthorHistory(author string, limit int) ([]models.EmailRecord, error) {
	rows, err := s.db.Query(`
		SELECT email_id, author, subject, classification, reasoning,
		       thread_summary, timestamp, response_sent, raw_content
		FROM email_history
		WHERE author = ?
		ORDER BY timestamp DESC
		LIMIT ?
	`, author, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return s.scanRecords(rows)
}

// FindBySubject returns records whose subject contains the fragment,
// newest first. The match is a deliberate case-sensitive substring.
func (s *EmailStore) FindBySubject(fragment string, limit int) ([]models.EmailRecord, error) {
	rows, err := s.db.Query(`
		SELECT email_id, author, subject, classification, reasoning,
		       thread_summary, timestamp, response_sent, raw_content
		FROM email_history
		WHERE instr(subject, ?) > 0
		ORDER BY timestamp DESC
		LIMIT ?
	`, fragment, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return s.scanRecords(rows)
}

// MarkResponded sets response_sent for an email. Returns false when the id
// is unknown; that is a signal, not an error.
func (s *EmailStore) MarkResponded(emailID string) (bool, error) {
	result, err := s.db.Exec(`
		UPDATE email_history
		SET response_sent = TRUE
		WHERE email_id = ?
	`, emailID)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// DailySummary returns per-classification counts for a calendar date plus a
// "total" key. Classifications with no records report 0.
func (s *EmailStore) DailySummary(date time.Time) (map[string]int, error) {
	summary := map[string]int{"total": 0}
	for _, cls := range models.Classifications {
		summary[string(cls)] = 0
	}

	rows, err := s.db.Query(`
		SELECT classification, COUNT(*)
		FROM email_history
		WHERE DATE(timestamp) = ?
		GROUP BY classification
	`, date.UTC().Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var cls string
		var count int
		if err := rows.Scan(&cls, &count); err != nil {
			return nil, err
		}
		summary[cls] = count
		summary["total"] += count
	}

	return summary, rows.Err()
}

// WeeklyBreakdown returns per-classification counts for each of the 7
// calendar days up to asOf. Days with no activity carry zero counts.
func (s *EmailStore) WeeklyBreakdown(asOf time.Time) (map[string]map[string]int, error) {
	day := asOf.UTC()
	stats := make(map[string]map[string]int, 7)
	for i := 0; i < 7; i++ {
		counts := make(map[string]int, len(models.Classifications))
		for _, cls := range models.Classifications {
			counts[string(cls)] = 0
		}
		stats[day.AddDate(0, 0, -i).Format("2006-01-02")] = counts
	}

	start := day.AddDate(0, 0, -6).Format("2006-01-02")
	rows, err := s.db.Query(`
		SELECT DATE(timestamp) AS day, classification, COUNT(*)
		FROM email_history
		WHERE DATE(timestamp) >= ? AND DATE(timestamp) <= ?
		GROUP BY DATE(timestamp), classification
	`, start, day.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var d, cls string
		var count int
		if err := rows.Scan(&d, &cls, &count); err != nil {
			return nil, err
		}
		if counts, ok := stats[d]; ok {
			counts[cls] = count
		}
	}

	return stats, rows.Err()
}

// TopSenders returns the most frequent authors, count descending.
func (s *EmailStore) TopSenders(limit int) ([]SenderCount, error) {
	rows, err := s.db.Query(`
		SELECT author, COUNT(*) AS email_count
		FROM email_history
		GROUP BY author
		ORDER BY email_count DESC, author ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var senders []SenderCount
	for rows.Next() {
		var sc SenderCount
		if err := rows.Scan(&sc.Author, &sc.Count); err != nil {
			return nil, err
		}
		senders = append(senders, sc)
	}

	return senders, rows.Err()
}

// PurgeOlderThan deletes records dated before today minus the given number
// of days. Returns the number of rows deleted. Destructive and irreversible.
func (s *EmailStore) PurgeOlderThan(days int) (int64, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -days).Format("2006-01-02")

	result, err := s.db.Exec(`
		DELETE FROM email_history
		WHERE DATE(timestamp) < ?
	`, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// scanRecords scans rows into a slice of EmailRecord
func (s *EmailStore) scanRecords(rows *sql.Rows) ([]models.EmailRecord, error) {
	records := []models.EmailRecord{}

	for rows.Next() {
		var (
			record  models.EmailRecord
			cls     string
			subject sql.NullString
			reason  sql.NullString
			summary sql.NullString
			raw     sql.NullString
		)

		err := rows.Scan(&record.EmailID, &record.Author, &subject, &cls,
			&reason, &summary, &record.Timestamp, &record.ResponseSent, &raw)
		if err != nil {
			return nil, err
		}

		record.Classification = models.Classification(cls)
		record.Subject = subject.String
		record.Reasoning = reason.String
		record.ThreadSummary = summary.String
		record.RawContent = raw.String

		records = append(records, record)
	}

	return records, rows.Err()
}
