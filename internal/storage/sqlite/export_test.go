// ABOUTME: Tests for full-snapshot export
// ABOUTME: Verifies one collection per table and round-trippable JSON output
package sqlite

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/harper/inbox-triage/internal/models"
)

func seedExportData(t *testing.T, store *Storage) {
	t.Helper()

	record := &models.EmailRecord{
		EmailID:        "msg_1",
		Author:         "john@example.com",
		Subject:        "Quarterly review",
		Classification: models.ClassificationNotify,
		Reasoning:      "Informational",
		ThreadSummary:  "Numbers attached",
		Timestamp:      time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC),
	}
	if err := store.Emails().Save(record); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := store.Context().Set("preferred_meeting_time", "2pm-4pm", "scheduling"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := store.Patterns().Observe("example.com", models.ClassificationNotify, []string{"review"}); err != nil {
		t.Fatalf("Observe() error = %v", err)
	}
	if err := store.Templates().Save("ack", "Got it!", ""); err != nil {
		t.Fatalf("Save template error = %v", err)
	}
}

func TestExportSnapshot(t *testing.T) {
	store, err := NewStorageInMemory()
	if err != nil {
		t.Fatalf("NewStorageInMemory() error = %v", err)
	}
	defer func() { _ = store.Close() }()

	seedExportData(t, store)

	data, err := store.Export()
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	if len(data.EmailHistory) != 1 {
		t.Errorf("len(EmailHistory) = %d, want 1", len(data.EmailHistory))
	}
	if data.EmailHistory[0].EmailID != "msg_1" || data.EmailHistory[0].Classification != "notify" {
		t.Errorf("EmailHistory[0] = %+v, want msg_1/notify", data.EmailHistory[0])
	}
	if len(data.UserContext) != 1 || data.UserContext[0].Key != "preferred_meeting_time" {
		t.Errorf("UserContext = %+v, want the stored entry", data.UserContext)
	}
	if len(data.ConversationPatterns) != 1 || data.ConversationPatterns[0].Frequency != 1 {
		t.Errorf("ConversationPatterns = %+v, want one row with frequency 1", data.ConversationPatterns)
	}
	if len(data.ResponseTemplates) != 1 || data.ResponseTemplates[0].Name != "ack" {
		t.Errorf("ResponseTemplates = %+v, want the ack template", data.ResponseTemplates)
	}
}

func TestExportEmptyStore(t *testing.T) {
	store, err := NewStorageInMemory()
	if err != nil {
		t.Fatalf("NewStorageInMemory() error = %v", err)
	}
	defer func() { _ = store.Close() }()

	data, err := store.Export()
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	// Collections are present (and empty), never absent
	if data.EmailHistory == nil || data.UserContext == nil || data.ConversationPatterns == nil || data.ResponseTemplates == nil {
		t.Error("empty collections should be non-nil")
	}
}

func TestExportToJSON(t *testing.T) {
	store, err := NewStorageInMemory()
	if err != nil {
		t.Fatalf("NewStorageInMemory() error = %v", err)
	}
	defer func() { _ = store.Close() }()

	seedExportData(t, store)

	path := filepath.Join(t.TempDir(), "backup", "snapshot.json")
	if err := store.ExportToJSON(path); err != nil {
		t.Fatalf("ExportToJSON() error = %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	var decoded ExportData
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("snapshot is not valid JSON: %v", err)
	}
	if decoded.Tool != "inbox-triage" {
		t.Errorf("Tool = %q, want inbox-triage", decoded.Tool)
	}
	if len(decoded.EmailHistory) != 1 {
		t.Errorf("decoded EmailHistory = %d rows, want 1", len(decoded.EmailHistory))
	}
}

func TestExportToYAML(t *testing.T) {
	store, err := NewStorageInMemory()
	if err != nil {
		t.Fatalf("NewStorageInMemory() error = %v", err)
	}
	defer func() { _ = store.Close() }()

	seedExportData(t, store)

	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	if err := store.ExportToYAML(path); err != nil {
		t.Fatalf("ExportToYAML() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if info.Size() == 0 {
		t.Error("YAML snapshot is empty")
	}
}
