// ABOUTME: CLI command for retention cleanup of old triage decisions
// ABOUTME: Deletes email history older than the retention window
package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/harper/inbox-triage/internal/config"
)

var (
	purgeDays    int
	purgeConfirm bool
)

// NewPurgeCmd creates the purge command
func NewPurgeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete triage decisions older than the retention window",
		Long: `Delete email history records older than the retention window.

User context, conversation patterns, and response templates are kept.
The default window comes from TRIAGE_RETENTION_DAYS (90 days).

Examples:
  triage purge --confirm
  triage purge --days 30 --confirm`,
		RunE: runPurge,
	}

	cmd.Flags().IntVar(&purgeDays, "days", 0, "Retention window in days (default from TRIAGE_RETENTION_DAYS)")
	cmd.Flags().BoolVar(&purgeConfirm, "confirm", false, "Confirm the deletion")

	return cmd
}

func runPurge(cmd *cobra.Command, args []string) error {
	days := purgeDays
	if days == 0 {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}
		days = cfg.RetentionDays
	}
	if err := validatePositiveInt(days, "days"); err != nil {
		return err
	}

	if !purgeConfirm {
		fmt.Fprintf(cmd.OutOrStdout(), "This will delete decisions older than %s days\n", strconv.Itoa(days))
		fmt.Fprintln(cmd.OutOrStdout(), "Run with --confirm to proceed")
		return nil
	}

	store, err := openStorage()
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}
	defer store.Close()

	deleted, err := store.PurgeOlderThan(days)
	if err != nil {
		return fmt.Errorf("purging history: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d records older than %d days\n", deleted, days)
	}
	return nil
}
