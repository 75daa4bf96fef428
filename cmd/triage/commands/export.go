// ABOUTME: CLI command to export the full triage memory
// ABOUTME: Writes history, context, patterns, and templates to YAML or JSON
package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var exportOutput string

// NewExportCmd creates the export command
func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all triage memory to a file",
		Long: `Export the full triage memory - email history, user context,
conversation patterns, and response templates - to a YAML or JSON file.

The format is chosen from the output file extension.

Examples:
  triage export --output memory.yaml
  triage export --output memory.json`,
		RunE: runExport,
	}

	cmd.Flags().StringVar(&exportOutput, "output", "triage-export.yaml", "Output file path")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	store, err := openStorage()
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}
	defer store.Close()

	if strings.HasSuffix(exportOutput, ".json") {
		err = store.ExportToJSON(exportOutput)
	} else {
		err = store.ExportToYAML(exportOutput)
	}
	if err != nil {
		return fmt.Errorf("exporting memory: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Exported memory to %s\n", exportOutput)
	}
	return nil
}
