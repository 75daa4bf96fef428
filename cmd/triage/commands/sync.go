// ABOUTME: Sync commands for Charm cloud backup of triage memory
// ABOUTME: Provides status, push, pull, wipe, and keys management
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/harper/inbox-triage/internal/charm"
)

// NewSyncCmd creates the sync command group
func NewSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Manage Charm cloud backups",
		Long: `Manage triage memory backups in Charm cloud.

Triage pushes full memory snapshots to Charm via SSH key auth. Devices
linked to the same Charm account share the snapshot history.`,
	}

	cmd.AddCommand(newSyncStatusCmd())
	cmd.AddCommand(newSyncPushCmd())
	cmd.AddCommand(newSyncPullCmd())
	cmd.AddCommand(newSyncWipeCmd())
	cmd.AddCommand(newSyncKeysCmd())
	cmd.AddCommand(newSyncUnlinkCmd())

	return cmd
}

func newSyncStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show sync status and connection info",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := charm.GetClient()
			if err != nil {
				return fmt.Errorf("failed to connect to Charm: %w", err)
			}

			id, err := client.ID()
			if err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Status: Not connected")
				fmt.Fprintln(cmd.OutOrStdout(), "Run 'triage sync keys' to check your SSH keys")
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Status: Connected")
			fmt.Fprintf(cmd.OutOrStdout(), "User ID: %s\n", id)
			fmt.Fprintf(cmd.OutOrStdout(), "Host: %s\n", os.Getenv("CHARM_HOST"))

			snapshots, err := client.ListSnapshots()
			if err == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Snapshots: %d\n", len(snapshots))
			}

			return nil
		},
	}
}

func newSyncPushCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "push",
		Short: "Push a memory snapshot to Charm cloud",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStorage()
			if err != nil {
				return fmt.Errorf("initializing storage: %w", err)
			}
			defer store.Close()

			snapshot, err := store.Export()
			if err != nil {
				return fmt.Errorf("building snapshot: %w", err)
			}

			client, err := charm.GetClient()
			if err != nil {
				return fmt.Errorf("failed to connect to Charm: %w", err)
			}

			if err := client.PushSnapshot(snapshot); err != nil {
				return fmt.Errorf("pushing snapshot: %w", err)
			}
			if err := client.PushContext(snapshot.UserContext); err != nil {
				return fmt.Errorf("mirroring context entries: %w", err)
			}

			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "Pushed snapshot (%d decisions, %d context entries)\n",
					len(snapshot.EmailHistory), len(snapshot.UserContext))
			}
			return nil
		},
	}
}

func newSyncPullCmd() *cobra.Command {
	var restoreContext bool

	cmd := &cobra.Command{
		Use:   "pull",
		Short: "Show the latest snapshot in Charm cloud",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := charm.GetClient()
			if err != nil {
				return fmt.Errorf("failed to connect to Charm: %w", err)
			}

			snapshot, err := client.PullSnapshot()
			if err != nil {
				return fmt.Errorf("pulling snapshot: %w", err)
			}
			if snapshot == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No snapshot found")
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Latest snapshot from %s\n", snapshot.ExportedAt)
			fmt.Fprintf(cmd.OutOrStdout(), "  Decisions: %d\n", len(snapshot.EmailHistory))
			fmt.Fprintf(cmd.OutOrStdout(), "  Context entries: %d\n", len(snapshot.UserContext))
			fmt.Fprintf(cmd.OutOrStdout(), "  Patterns: %d\n", len(snapshot.ConversationPatterns))
			fmt.Fprintf(cmd.OutOrStdout(), "  Templates: %d\n", len(snapshot.ResponseTemplates))

			if !restoreContext {
				return nil
			}

			entries, err := client.PullContext()
			if err != nil {
				return fmt.Errorf("pulling context entries: %w", err)
			}

			store, err := openStorage()
			if err != nil {
				return fmt.Errorf("initializing storage: %w", err)
			}
			defer store.Close()

			for _, entry := range entries {
				if err := store.Context().Set(entry.Key, entry.Value, entry.Category); err != nil {
					return fmt.Errorf("restoring context %s: %w", entry.Key, err)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Restored %d context entries\n", len(entries))
			return nil
		},
	}

	cmd.Flags().BoolVar(&restoreContext, "restore-context", false, "Apply mirrored context entries to the local database")

	return cmd
}

func newSyncWipeCmd() *cobra.Command {
	var confirm bool

	cmd := &cobra.Command{
		Use:   "wipe",
		Short: "Wipe all local Charm data (nuclear option)",
		Long: `Completely wipe all local Charm data.

WARNING: This deletes all locally cached snapshots. Your cloud data
remains intact and will be re-synced on next access.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirm {
				fmt.Fprintln(cmd.OutOrStdout(), "This will wipe ALL local Charm data!")
				fmt.Fprintln(cmd.OutOrStdout(), "Run with --confirm to proceed")
				return nil
			}

			client, err := charm.GetClient()
			if err != nil {
				return fmt.Errorf("failed to connect to Charm: %w", err)
			}

			if err := client.Reset(); err != nil {
				return fmt.Errorf("failed to wipe data: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Local data wiped successfully")
			return nil
		},
	}

	cmd.Flags().BoolVar(&confirm, "confirm", false, "Confirm the wipe operation")

	return cmd
}

func newSyncKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List authorized SSH keys",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := charm.GetClient()
			if err != nil {
				return fmt.Errorf("failed to connect to Charm: %w", err)
			}

			keys, err := client.GetAuthorizedKeys()
			if err != nil {
				return fmt.Errorf("failed to get authorized keys: %w", err)
			}

			if keys == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "No authorized keys found")
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Authorized SSH keys:")
			fmt.Fprintln(cmd.OutOrStdout(), keys)

			return nil
		},
	}
}

func newSyncUnlinkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unlink <key>",
		Short: "Remove an authorized SSH key from the account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := charm.GetClient()
			if err != nil {
				return fmt.Errorf("failed to connect to Charm: %w", err)
			}

			if err := client.UnlinkKey(args[0]); err != nil {
				return fmt.Errorf("failed to unlink key: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Key unlinked")
			return nil
		},
	}
}
