// ABOUTME: Tests for the Storage facade and prompt-context formatting
// ABOUTME: Pins the FormatAuthorHistory contract: sentinel, line shape, ordering
package sqlite

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/harper/inbox-triage/internal/models"
)

func TestFormatAuthorHistoryNoRecords(t *testing.T) {
	store, err := NewStorageInMemory()
	if err != nil {
		t.Fatalf("NewStorageInMemory() error = %v", err)
	}
	defer func() { _ = store.Close() }()

	formatted, err := store.FormatAuthorHistory("stranger@nowhere.test", 3)
	if err != nil {
		t.Fatalf("FormatAuthorHistory() error = %v", err)
	}
	if formatted != NoHistorySentinel {
		t.Errorf("formatted = %q, want sentinel %q", formatted, NoHistorySentinel)
	}
}

func TestFormatAuthorHistoryLines(t *testing.T) {
	store, err := NewStorageInMemory()
	if err != nil {
		t.Fatalf("NewStorageInMemory() error = %v", err)
	}
	defer func() { _ = store.Close() }()

	base := time.Date(2026, 8, 18, 12, 0, 0, 0, time.UTC)
	summaries := []string{"Kickoff agenda", "Budget question", "Meeting request for project discussion"}
	classifications := []models.Classification{
		models.ClassificationIgnore,
		models.ClassificationNotify,
		models.ClassificationRespond,
	}

	for i := 0; i < 3; i++ {
		record := &models.EmailRecord{
			EmailID:        fmt.Sprintf("msg_%d", i),
			Author:         "john@example.com",
			Subject:        "s",
			Classification: classifications[i],
			ThreadSummary:  summaries[i],
			Timestamp:      base.AddDate(0, 0, i),
		}
		if err := store.Emails().Save(record); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}

	formatted, err := store.FormatAuthorHistory("john@example.com", 3)
	if err != nil {
		t.Fatalf("FormatAuthorHistory() error = %v", err)
	}

	lines := strings.Split(formatted, "\n")
	if len(lines) != 3 {
		t.Fatalf("len(lines) = %d, want 3", len(lines))
	}

	// Newest first
	want := []string{
		"- 2026-08-20: RESPOND - Meeting request for project discussion",
		"- 2026-08-19: NOTIFY - Budget question",
		"- 2026-08-18: IGNORE - Kickoff agenda",
	}
	for i, line := range lines {
		if line != want[i] {
			t.Errorf("line %d = %q, want %q", i, line, want[i])
		}
	}
}

func TestFormatAuthorHistoryDefaultLimit(t *testing.T) {
	store, err := NewStorageInMemory()
	if err != nil {
		t.Fatalf("NewStorageInMemory() error = %v", err)
	}
	defer func() { _ = store.Close() }()

	base := time.Date(2026, 8, 10, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		record := &models.EmailRecord{
			EmailID:        fmt.Sprintf("msg_%d", i),
			Author:         "busy@example.com",
			Classification: models.ClassificationIgnore,
			ThreadSummary:  "digest",
			Timestamp:      base.AddDate(0, 0, i),
		}
		if err := store.Emails().Save(record); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}

	formatted, err := store.FormatAuthorHistory("busy@example.com", 0)
	if err != nil {
		t.Fatalf("FormatAuthorHistory() error = %v", err)
	}
	if got := len(strings.Split(formatted, "\n")); got != DefaultHistoryLimit {
		t.Errorf("len(lines) = %d, want default limit %d", got, DefaultHistoryLimit)
	}
}

func TestStorageFacadeWiring(t *testing.T) {
	store, err := NewStorageInMemory()
	if err != nil {
		t.Fatalf("NewStorageInMemory() error = %v", err)
	}
	defer func() { _ = store.Close() }()

	if store.Emails() == nil || store.Context() == nil || store.Patterns() == nil || store.Templates() == nil {
		t.Fatal("facade accessors should never be nil")
	}

	if err := store.ObservePattern("acme.com", models.ClassificationNotify, []string{"release"}); err != nil {
		t.Fatalf("ObservePattern() error = %v", err)
	}
	patterns, err := store.Patterns().GetForDomain("acme.com")
	if err != nil {
		t.Fatalf("GetForDomain() error = %v", err)
	}
	if len(patterns) != 1 {
		t.Errorf("len(patterns) = %d, want 1", len(patterns))
	}
}
