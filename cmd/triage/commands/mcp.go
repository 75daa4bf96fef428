// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Enables LLM agents like Claude to use triage memory via stdio
package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/harper/inbox-triage/internal/mcp"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs the triage memory as an MCP (Model Context Protocol) server,
enabling LLM agents like Claude to record decisions, look up sender
history, and manage user context via stdio.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by Claude Desktop)
  triage mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "triage": {
  #       "command": "triage",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !quiet {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	store, err := openStorage()
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	server := mcpserver.NewMCPServer(
		"Inbox Triage Memory",
		"0.1.0",
	)

	mcp.RegisterTools(server, store)

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !quiet {
		log.Println("Triage memory MCP server starting on stdio...")
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		if !quiet {
			log.Println("Shutdown signal received, gracefully shutting down...")
		}

		if err := store.Close(); err != nil {
			log.Printf("Warning: Error closing storage: %v", err)
		}

		if !quiet {
			log.Println("Shutdown complete")
		}

	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
