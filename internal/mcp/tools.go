// ABOUTME: MCP tool definitions and registration for the triage memory server
// ABOUTME: Defines JSON schemas for all 6 memory tools
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/harper/inbox-triage/internal/storage/sqlite"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, store *sqlite.Storage) *Handlers {
	handlers := &Handlers{storage: store}

	// 1. record_decision - Store a triage decision for an email
	server.AddTool(mcp.Tool{
		Name:        "record_decision",
		Description: "Record a triage decision (ignore, respond, or notify) for an email so future triage of the same sender can use it.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"email_id": map[string]interface{}{
					"type":        "string",
					"description": "Unique message identifier",
				},
				"author": map[string]interface{}{
					"type":        "string",
					"description": "Sender email address",
				},
				"subject": map[string]interface{}{
					"type":        "string",
					"description": "Email subject line",
				},
				"classification": map[string]interface{}{
					"type":        "string",
					"description": "Triage verdict: ignore, respond, or notify",
					"enum":        []string{"ignore", "respond", "notify"},
				},
				"reasoning": map[string]interface{}{
					"type":        "string",
					"description": "Why the email was classified this way",
				},
				"thread_summary": map[string]interface{}{
					"type":        "string",
					"description": "Optional one-line summary of the thread (defaults to subject)",
				},
			},
			Required: []string{"email_id", "author", "subject", "classification"},
		},
	}, handlers.RecordDecision)

	// 2. author_history - Past decisions for a sender, formatted for prompts
	server.AddTool(mcp.Tool{
		Name:        "author_history",
		Description: "Get recent triage decisions for a sender, formatted as prompt-ready context lines.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"author": map[string]interface{}{
					"type":        "string",
					"description": "Sender email address",
				},
				"limit": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of decisions to return (default: 3)",
					"default":     3,
				},
			},
			Required: []string{"author"},
		},
	}, handlers.AuthorHistory)

	// 3. daily_summary - Classification counts for one day
	server.AddTool(mcp.Tool{
		Name:        "daily_summary",
		Description: "Get classification counts (ignore, notify, respond, total) for a single day.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"date": map[string]interface{}{
					"type":        "string",
					"description": "Day to summarize in YYYY-MM-DD form (default: today)",
				},
			},
		},
	}, handlers.DailySummary)

	// 4. sender_patterns - Learned behavior patterns for a sender domain
	server.AddTool(mcp.Tool{
		Name:        "sender_patterns",
		Description: "Get learned conversation patterns for a sender domain, ordered by frequency.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"domain": map[string]interface{}{
					"type":        "string",
					"description": "Sender domain, e.g. acme.com",
				},
			},
			Required: []string{"domain"},
		},
	}, handlers.SenderPatterns)

	// 5. set_context - Store a user preference or fact
	server.AddTool(mcp.Tool{
		Name:        "set_context",
		Description: "Store a user preference or fact that shapes future triage decisions.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"key": map[string]interface{}{
					"type":        "string",
					"description": "Context key, e.g. work_hours",
				},
				"value": map[string]interface{}{
					"type":        "string",
					"description": "Context value",
				},
				"category": map[string]interface{}{
					"type":        "string",
					"description": "Grouping category (default: general)",
				},
			},
			Required: []string{"key", "value"},
		},
	}, handlers.SetContext)

	// 6. get_context - Look up stored user context
	server.AddTool(mcp.Tool{
		Name:        "get_context",
		Description: "Look up stored user context by key, or list a whole category when only category is given.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"key": map[string]interface{}{
					"type":        "string",
					"description": "Context key to look up",
				},
				"category": map[string]interface{}{
					"type":        "string",
					"description": "Category to list when no key is given",
				},
			},
		},
	}, handlers.GetContext)

	return handlers
}
