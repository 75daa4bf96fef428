// ABOUTME: CLI command to show past triage decisions for a sender
// ABOUTME: Prints prompt-ready context lines or full records as JSON
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var historyLimit int

// NewHistoryCmd creates the history command
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history <author>",
		Short: "Show past triage decisions for a sender",
		Long: `Show recent triage decisions for a sender, newest first.

The default output is the same formatted context block the classifier
sees in its prompt.

Examples:
  triage history alice@acme.com
  triage history alice@acme.com --limit 10
  triage history alice@acme.com --format json`,
		Args: cobra.ExactArgs(1),
		RunE: runHistory,
	}

	cmd.Flags().IntVar(&historyLimit, "limit", 3, "Maximum number of decisions to show")

	return cmd
}

func runHistory(cmd *cobra.Command, args []string) error {
	if err := validatePositiveInt(historyLimit, "limit"); err != nil {
		return err
	}

	store, err := openStorage()
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}
	defer store.Close()

	author := args[0]

	if outputFormat == "json" {
		records, err := store.Emails().GetAuthorHistory(author, historyLimit)
		if err != nil {
			return fmt.Errorf("loading history: %w", err)
		}
		jsonData, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	if verbose {
		records, err := store.Emails().GetAuthorHistory(author, historyLimit)
		if err != nil {
			return fmt.Errorf("loading history: %w", err)
		}
		if len(records) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No previous interactions with this sender.")
			return nil
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "WHEN\tACTION\tSUBJECT\tREASONING\n")
		for _, r := range records {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				formatTime(r.Timestamp),
				r.Classification,
				truncate(r.Subject, 40),
				truncate(r.Reasoning, 60))
		}
		return w.Flush()
	}

	formatted, err := store.FormatAuthorHistory(author, historyLimit)
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatted)
	return nil
}
