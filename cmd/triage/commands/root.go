// ABOUTME: Root CLI command with global flags and subcommand registration
// ABOUTME: Defines the triage command tree and output controls
package commands

import (
	"github.com/spf13/cobra"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
)

const banner = `
████████╗██████╗ ██╗ █████╗  ██████╗ ███████╗
╚══██╔══╝██╔══██╗██║██╔══██╗██╔════╝ ██╔════╝
   ██║   ██████╔╝██║███████║██║  ███╗█████╗
   ██║   ██╔══██╗██║██╔══██║██║   ██║██╔══╝
   ██║   ██║  ██║██║██║  ██║╚██████╔╝███████╗
   ╚═╝   ╚═╝  ╚═╝╚═╝╚═╝  ╚═╝ ╚═════╝ ╚══════╝
`

// NewRootCmd creates the root command with all subcommands
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "triage",
		Short: "Memory-backed email triage assistant",
		Long: banner + `
Triage classifies incoming email as ignore, respond, or notify using
an LLM grounded in persistent memory of past decisions. Every verdict
is stored, so the assistant gets better at handling each sender over
time.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format (auto, table, json)")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(NewRunCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewStatsCmd())
	cmd.AddCommand(NewContextCmd())
	cmd.AddCommand(NewExportCmd())
	cmd.AddCommand(NewPurgeCmd())
	cmd.AddCommand(NewSyncCmd())
	cmd.AddCommand(NewMCPCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
