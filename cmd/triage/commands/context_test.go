// ABOUTME: Tests for context command group
// ABOUTME: Exercises set, get, and list against a temp database

package commands

import (
	"bytes"
	"strings"
	"testing"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var output bytes.Buffer
	cmd.SetOut(&output)
	cmd.SetErr(&output)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return output.String(), err
}

func TestContextCmd_Structure(t *testing.T) {
	cmd := NewContextCmd()

	if cmd.Use != "context" {
		t.Errorf("Use = %q, want %q", cmd.Use, "context")
	}

	expectedSubcommands := []string{"set", "get", "list"}
	for _, name := range expectedSubcommands {
		found := false
		for _, sub := range cmd.Commands() {
			if strings.HasPrefix(sub.Use, name) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Subcommand %q not found", name)
		}
	}
}

func TestContextSetAndGet(t *testing.T) {
	t.Setenv("TRIAGE_DB_PATH", t.TempDir()+"/context-test.db")

	if _, err := runCommand(t, "context", "set", "work_hours", "9am-5pm CT"); err != nil {
		t.Fatalf("context set error = %v", err)
	}

	output, err := runCommand(t, "context", "get", "work_hours")
	if err != nil {
		t.Fatalf("context get error = %v", err)
	}
	if !strings.Contains(output, "9am-5pm CT") {
		t.Errorf("get output = %q, want stored value", output)
	}
}

func TestContextGet_Missing(t *testing.T) {
	t.Setenv("TRIAGE_DB_PATH", t.TempDir()+"/context-test.db")

	_, err := runCommand(t, "context", "get", "nonexistent")
	if err == nil {
		t.Fatal("Expected error for missing context key")
	}
}

func TestContextList(t *testing.T) {
	t.Setenv("TRIAGE_DB_PATH", t.TempDir()+"/context-test.db")

	if _, err := runCommand(t, "context", "set", "vip", "alice@acme.com", "--category", "contacts"); err != nil {
		t.Fatalf("context set error = %v", err)
	}

	output, err := runCommand(t, "context", "list")
	if err != nil {
		t.Fatalf("context list error = %v", err)
	}
	if !strings.Contains(output, "vip") || !strings.Contains(output, "contacts") {
		t.Errorf("list output = %q, want key and category", output)
	}
}
