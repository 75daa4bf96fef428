// ABOUTME: CLI commands for triage statistics
// ABOUTME: Daily summaries, weekly breakdowns, and top sender reports
package commands

import (
	"encoding/json"
	"fmt"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/harper/inbox-triage/internal/models"
)

var (
	statsDate       string
	statsSenderRows int
)

// NewStatsCmd creates the stats command group
func NewStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show triage statistics",
		Long: `Show statistics over recorded triage decisions.

Examples:
  triage stats daily
  triage stats daily --date 2026-08-29
  triage stats weekly
  triage stats senders --limit 5`,
	}

	cmd.AddCommand(newStatsDailyCmd())
	cmd.AddCommand(newStatsWeeklyCmd())
	cmd.AddCommand(newStatsSendersCmd())

	return cmd
}

func newStatsDailyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Classification counts for one day",
		RunE: func(cmd *cobra.Command, args []string) error {
			day := time.Now().UTC()
			if statsDate != "" {
				parsed, err := time.Parse("2006-01-02", statsDate)
				if err != nil {
					return fmt.Errorf("invalid --date %q, want YYYY-MM-DD", statsDate)
				}
				day = parsed
			}

			store, err := openStorage()
			if err != nil {
				return fmt.Errorf("initializing storage: %w", err)
			}
			defer store.Close()

			summary, err := store.DailySummary(day)
			if err != nil {
				return fmt.Errorf("building summary: %w", err)
			}

			if outputFormat == "json" {
				return printJSON(cmd, map[string]interface{}{
					"date":   day.Format("2006-01-02"),
					"counts": summary,
				})
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Triage summary for %s\n\n", day.Format("2006-01-02"))
			for _, cls := range models.Classifications {
				fmt.Fprintf(cmd.OutOrStdout(), "  %-8s %d\n", cls, summary[string(cls)])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  %-8s %d\n", "total", summary["total"])
			return nil
		},
	}

	cmd.Flags().StringVar(&statsDate, "date", "", "Day to summarize (YYYY-MM-DD, default today)")

	return cmd
}

func newStatsWeeklyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "weekly",
		Short: "Classification counts for the last 7 days",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStorage()
			if err != nil {
				return fmt.Errorf("initializing storage: %w", err)
			}
			defer store.Close()

			breakdown, err := store.WeeklyBreakdown(time.Now().UTC())
			if err != nil {
				return fmt.Errorf("building breakdown: %w", err)
			}

			if outputFormat == "json" {
				return printJSON(cmd, breakdown)
			}

			days := make([]string, 0, len(breakdown))
			for day := range breakdown {
				days = append(days, day)
			}
			sort.Strings(days)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "DAY\tIGNORE\tNOTIFY\tRESPOND\tTOTAL\n")
			for _, day := range days {
				counts := breakdown[day]
				total := counts["ignore"] + counts["notify"] + counts["respond"]
				fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\n", day,
					counts["ignore"], counts["notify"], counts["respond"], total)
			}
			return w.Flush()
		},
	}
}

func newStatsSendersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "senders",
		Short: "Most frequent senders with decision counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validatePositiveInt(statsSenderRows, "limit"); err != nil {
				return err
			}

			store, err := openStorage()
			if err != nil {
				return fmt.Errorf("initializing storage: %w", err)
			}
			defer store.Close()

			senders, err := store.Emails().TopSenders(statsSenderRows)
			if err != nil {
				return fmt.Errorf("loading senders: %w", err)
			}

			if outputFormat == "json" {
				return printJSON(cmd, senders)
			}

			if len(senders) == 0 {
				if !quiet {
					fmt.Fprintln(cmd.OutOrStdout(), "No decisions recorded yet")
				}
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "SENDER\tDECISIONS\n")
			for _, s := range senders {
				fmt.Fprintf(w, "%s\t%d\n", s.Author, s.Count)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&statsSenderRows, "limit", 10, "Maximum number of senders to show")

	return cmd
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
	return nil
}
