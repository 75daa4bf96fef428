// ABOUTME: Tests for purge command
// ABOUTME: Verifies confirmation gate and retention deletion

package commands

import (
	"strings"
	"testing"
)

func TestNewPurgeCmd(t *testing.T) {
	cmd := NewPurgeCmd()

	if cmd.Use != "purge" {
		t.Errorf("Use = %q, want %q", cmd.Use, "purge")
	}

	if cmd.Flags().Lookup("days") == nil {
		t.Error("--days flag not found")
	}
	if cmd.Flags().Lookup("confirm") == nil {
		t.Error("--confirm flag not found")
	}
}

func TestPurgeCmd_RequiresConfirm(t *testing.T) {
	t.Setenv("TRIAGE_DB_PATH", t.TempDir()+"/purge-test.db")

	output, err := runCommand(t, "purge")
	if err != nil {
		t.Fatalf("purge error = %v", err)
	}
	if !strings.Contains(output, "--confirm") {
		t.Errorf("output = %q, want confirmation prompt", output)
	}
}

func TestPurgeCmd_EmptyDatabase(t *testing.T) {
	t.Setenv("TRIAGE_DB_PATH", t.TempDir()+"/purge-test.db")

	output, err := runCommand(t, "purge", "--confirm")
	if err != nil {
		t.Fatalf("purge error = %v", err)
	}
	if !strings.Contains(output, "Deleted 0 records") {
		t.Errorf("output = %q, want zero deletions", output)
	}
}

func TestPurgeCmd_RejectsNegativeDays(t *testing.T) {
	t.Setenv("TRIAGE_DB_PATH", t.TempDir()+"/purge-test.db")

	if _, err := runCommand(t, "purge", "--days", "-5", "--confirm"); err == nil {
		t.Fatal("Expected error for negative --days")
	}
}
