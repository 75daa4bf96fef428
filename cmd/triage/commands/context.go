// ABOUTME: CLI commands for managing user context
// ABOUTME: Set, get, and list the preferences that shape triage decisions
package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harper/inbox-triage/internal/models"
)

var (
	contextCategory     string
	contextListCategory string
)

// NewContextCmd creates the context command group
func NewContextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "context",
		Short: "Manage user context and preferences",
		Long: `Manage the user context entries that shape triage decisions.

Context entries are key/value pairs grouped by category. The
classifier never sees them directly, but tools and future prompt
profiles can read them.

Examples:
  triage context set work_hours "9am-5pm CT"
  triage context set vip alice@acme.com --category contacts
  triage context get work_hours
  triage context list
  triage context list --category contacts`,
	}

	cmd.AddCommand(newContextSetCmd())
	cmd.AddCommand(newContextGetCmd())
	cmd.AddCommand(newContextListCmd())

	return cmd
}

func newContextSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Store a context entry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStorage()
			if err != nil {
				return fmt.Errorf("initializing storage: %w", err)
			}
			defer store.Close()

			if err := store.Context().Set(args[0], args[1], contextCategory); err != nil {
				return fmt.Errorf("storing context: %w", err)
			}

			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "Stored %s\n", args[0])
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&contextCategory, "category", models.DefaultCategory, "Category for the entry")

	return cmd
}

func newContextGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Look up a context entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStorage()
			if err != nil {
				return fmt.Errorf("initializing storage: %w", err)
			}
			defer store.Close()

			value, found, err := store.Context().Get(args[0])
			if err != nil {
				return fmt.Errorf("loading context: %w", err)
			}
			if !found {
				return fmt.Errorf("no context entry for %q", args[0])
			}

			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}
}

func newContextListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List context entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStorage()
			if err != nil {
				return fmt.Errorf("initializing storage: %w", err)
			}
			defer store.Close()

			entries, err := store.Context().ListAll()
			if err != nil {
				return fmt.Errorf("loading context: %w", err)
			}

			if outputFormat == "json" {
				return printJSON(cmd, entries)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "KEY\tVALUE\tCATEGORY\tUPDATED\n")
			shown := 0
			for _, entry := range entries {
				if contextListCategory != "" && entry.Category != contextListCategory {
					continue
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					entry.Key, truncate(entry.Value, 50), entry.Category, formatTime(entry.UpdatedAt))
				shown++
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if shown == 0 && !quiet {
				fmt.Fprintln(cmd.OutOrStdout(), "No context entries found")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&contextListCategory, "category", "", "Only show entries in this category")

	return cmd
}
