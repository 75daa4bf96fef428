// ABOUTME: Main entry point for the triage memory MCP server with stdio transport
// ABOUTME: Initializes SQLite storage and registers all memory tools
package main

import (
	"log"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/harper/inbox-triage/internal/config"
	"github.com/harper/inbox-triage/internal/mcp"
	"github.com/harper/inbox-triage/internal/storage/sqlite"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	var store *sqlite.Storage
	if cfg.DBPath != "" {
		store, err = sqlite.NewStorageWithPath(cfg.DBPath)
	} else {
		store, err = sqlite.NewStorage()
	}
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer store.Close()

	server := mcpserver.NewMCPServer(
		"Inbox Triage Memory",
		"0.1.0",
	)

	mcp.RegisterTools(server, store)

	log.Println("Triage memory MCP server starting on stdio...")
	if err := mcpserver.ServeStdio(server); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
