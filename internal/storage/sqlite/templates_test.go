// ABOUTME: Tests for response template storage
// ABOUTME: Covers name-keyed upsert and use-count bumping
package sqlite

import "testing"

func TestTemplateSaveAndGet(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	store := NewTemplateStore(db)

	if err := store.Save("meeting_accept", "Happy to meet. Does {time} work?", "scheduling"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	tmpl, err := store.Get("meeting_accept")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if tmpl == nil {
		t.Fatal("Get() returned nil for a saved template")
	}
	if tmpl.UseCount != 0 {
		t.Errorf("UseCount = %d, want 0 before use", tmpl.UseCount)
	}
	if tmpl.LastUsed != nil {
		t.Error("LastUsed should be nil before use")
	}
}

func TestTemplateUpsertKeepsUsageStats(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	store := NewTemplateStore(db)

	if err := store.Save("ack", "Got it, thanks!", ""); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, err := store.Use("ack"); err != nil {
		t.Fatalf("Use() error = %v", err)
	}
	if err := store.Save("ack", "Received, thank you.", ""); err != nil {
		t.Fatalf("second Save() error = %v", err)
	}

	tmpl, err := store.Get("ack")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if tmpl.Content != "Received, thank you." {
		t.Errorf("Content = %q, want updated content", tmpl.Content)
	}
	if tmpl.UseCount != 1 {
		t.Errorf("UseCount = %d, want 1 preserved across upsert", tmpl.UseCount)
	}
}

func TestTemplateUse(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	store := NewTemplateStore(db)

	if err := store.Save("ack", "Got it, thanks!", ""); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	tmpl, err := store.Use("ack")
	if err != nil {
		t.Fatalf("Use() error = %v", err)
	}
	if tmpl == nil {
		t.Fatal("Use() returned nil for a known template")
	}
	if tmpl.UseCount != 1 {
		t.Errorf("UseCount = %d, want 1 after first use", tmpl.UseCount)
	}
	if tmpl.LastUsed == nil {
		t.Error("LastUsed should be set after use")
	}

	// Unknown template is a nil result, not an error
	missing, err := store.Use("no_such_template")
	if err != nil {
		t.Fatalf("Use() error = %v for unknown name", err)
	}
	if missing != nil {
		t.Error("Use() should return nil for unknown name")
	}
}

func TestTemplateList(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	store := NewTemplateStore(db)

	if err := store.Save("a", "A", "scheduling"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := store.Save("b", "B", "general"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, err := store.Use("b"); err != nil {
		t.Fatalf("Use() error = %v", err)
	}

	all, err := store.List("")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("len(all) = %d, want 2", len(all))
	}
	if all[0].Name != "b" {
		t.Errorf("first template = %q, want most used first", all[0].Name)
	}

	scheduling, err := store.List("scheduling")
	if err != nil {
		t.Fatalf("List(scheduling) error = %v", err)
	}
	if len(scheduling) != 1 || scheduling[0].Name != "a" {
		t.Errorf("scheduling list = %v, want only template a", scheduling)
	}
}
