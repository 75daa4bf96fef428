// ABOUTME: Shared utility functions for CLI commands
// ABOUTME: Storage opening, display formatting, and small validators
package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/harper/inbox-triage/internal/storage/sqlite"
)

// openStorage opens the triage database, honoring TRIAGE_DB_PATH
func openStorage() (*sqlite.Storage, error) {
	if path := os.Getenv("TRIAGE_DB_PATH"); path != "" {
		return sqlite.NewStorageWithPath(path)
	}
	return sqlite.NewStorage()
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// formatTime formats a time for display
func formatTime(t time.Time) string {
	now := time.Now()
	diff := now.Sub(t)

	if diff < time.Minute {
		return "just now"
	} else if diff < time.Hour {
		mins := int(diff.Minutes())
		return fmt.Sprintf("%dm ago", mins)
	} else if diff < 24*time.Hour {
		hours := int(diff.Hours())
		return fmt.Sprintf("%dh ago", hours)
	} else if diff < 7*24*time.Hour {
		days := int(diff.Hours() / 24)
		return fmt.Sprintf("%dd ago", days)
	}
	return t.Format("2006-01-02")
}

// validatePositiveInt returns error if n is not positive
func validatePositiveInt(n int, name string) error {
	if n <= 0 {
		return fmt.Errorf("%s must be positive, got %d", name, n)
	}
	return nil
}
