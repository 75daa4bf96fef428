// ABOUTME: Tests for sync command group structure
// ABOUTME: Verifies backup management subcommands and flags

package commands

import (
	"strings"
	"testing"
)

func TestNewSyncCmd(t *testing.T) {
	cmd := NewSyncCmd()

	if cmd.Use != "sync" {
		t.Errorf("Use = %q, want %q", cmd.Use, "sync")
	}

	if cmd.Short == "" {
		t.Error("Short description should not be empty")
	}

	// Should mention Charm cloud
	if !strings.Contains(cmd.Long, "Charm") {
		t.Error("Long description should mention Charm")
	}
}

func TestSyncCmd_Subcommands(t *testing.T) {
	cmd := NewSyncCmd()

	expectedSubcommands := []string{
		"status",
		"push",
		"pull",
		"wipe",
		"keys",
		"unlink",
	}

	for _, subCmdName := range expectedSubcommands {
		t.Run(subCmdName, func(t *testing.T) {
			found := false
			for _, sub := range cmd.Commands() {
				if sub.Name() == subCmdName {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("Subcommand %q not found", subCmdName)
			}
		})
	}
}

func TestSyncWipeCmd_ConfirmFlag(t *testing.T) {
	cmd := NewSyncCmd()

	for _, sub := range cmd.Commands() {
		if sub.Use == "wipe" {
			if sub.Flags().Lookup("confirm") == nil {
				t.Error("wipe should have --confirm flag")
			}
			return
		}
	}
	t.Fatal("wipe subcommand not found")
}

func TestSyncPullCmd_RestoreContextFlag(t *testing.T) {
	cmd := NewSyncCmd()

	for _, sub := range cmd.Commands() {
		if sub.Name() == "pull" {
			if sub.Flags().Lookup("restore-context") == nil {
				t.Error("pull should have --restore-context flag")
			}
			return
		}
	}
	t.Fatal("pull subcommand not found")
}
