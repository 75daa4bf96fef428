// ABOUTME: MCP tool handler implementations for the triage memory server
// ABOUTME: Each handler validates arguments and returns JSON tool results
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/harper/inbox-triage/internal/models"
	"github.com/harper/inbox-triage/internal/storage/sqlite"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	storage *sqlite.Storage
}

// RecordDecision handles the record_decision tool
func (h *Handlers) RecordDecision(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	emailID, err := request.RequireString("email_id")
	if err != nil {
		return mcp.NewToolResultError("email_id argument is required and must be a string"), nil
	}
	author, err := request.RequireString("author")
	if err != nil {
		return mcp.NewToolResultError("author argument is required and must be a string"), nil
	}
	subject, err := request.RequireString("subject")
	if err != nil {
		return mcp.NewToolResultError("subject argument is required and must be a string"), nil
	}
	rawClassification, err := request.RequireString("classification")
	if err != nil {
		return mcp.NewToolResultError("classification argument is required and must be a string"), nil
	}

	classification, err := models.ParseClassification(rawClassification)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid classification: %v", err)), nil
	}

	summary := request.GetString("thread_summary", subject)

	record := &models.EmailRecord{
		EmailID:        emailID,
		Author:         author,
		Subject:        subject,
		Classification: classification,
		Reasoning:      request.GetString("reasoning", ""),
		ThreadSummary:  summary,
		Timestamp:      time.Now(),
	}

	if err := h.storage.Emails().Save(record); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to store decision: %v", err)), nil
	}

	if err := h.storage.ObservePattern(models.ExtractDomain(author), classification, nil); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to update sender patterns: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{
		"stored":         true,
		"email_id":       emailID,
		"classification": string(classification),
	})
}

// AuthorHistory handles the author_history tool
func (h *Handlers) AuthorHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	author, err := request.RequireString("author")
	if err != nil {
		return mcp.NewToolResultError("author argument is required and must be a string"), nil
	}

	limit := request.GetInt("limit", sqlite.DefaultHistoryLimit)

	formatted, err := h.storage.FormatAuthorHistory(author, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load author history: %v", err)), nil
	}

	records, err := h.storage.Emails().GetAuthorHistory(author, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load author history: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{
		"author":    author,
		"formatted": formatted,
		"decisions": records,
	})
}

// DailySummary handles the daily_summary tool
func (h *Handlers) DailySummary(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	day := time.Now().UTC()
	if raw := request.GetString("date", ""); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid date %q, want YYYY-MM-DD", raw)), nil
		}
		day = parsed
	}

	summary, err := h.storage.DailySummary(day)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to build daily summary: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{
		"date":   day.Format("2006-01-02"),
		"counts": summary,
	})
}

// SenderPatterns handles the sender_patterns tool
func (h *Handlers) SenderPatterns(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	domain, err := request.RequireString("domain")
	if err != nil {
		return mcp.NewToolResultError("domain argument is required and must be a string"), nil
	}

	patterns, err := h.storage.Patterns().GetForDomain(models.ExtractDomain(domain))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load sender patterns: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{
		"domain":   models.ExtractDomain(domain),
		"patterns": patterns,
	})
}

// SetContext handles the set_context tool
func (h *Handlers) SetContext(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := request.RequireString("key")
	if err != nil {
		return mcp.NewToolResultError("key argument is required and must be a string"), nil
	}
	value, err := request.RequireString("value")
	if err != nil {
		return mcp.NewToolResultError("value argument is required and must be a string"), nil
	}

	category := request.GetString("category", models.DefaultCategory)

	if err := h.storage.Context().Set(key, value, category); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to store context: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{
		"stored":   true,
		"key":      key,
		"category": category,
	})
}

// GetContext handles the get_context tool
func (h *Handlers) GetContext(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key := request.GetString("key", "")
	category := request.GetString("category", "")

	switch {
	case key != "":
		value, found, err := h.storage.Context().Get(key)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to load context: %v", err)), nil
		}
		return jsonResult(map[string]interface{}{
			"key":   key,
			"value": value,
			"found": found,
		})

	case category != "":
		entries, err := h.storage.Context().GetByCategory(category)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to load context: %v", err)), nil
		}
		return jsonResult(map[string]interface{}{
			"category": category,
			"entries":  entries,
		})

	default:
		return mcp.NewToolResultError("either key or category must be provided"), nil
	}
}

func jsonResult(response map[string]interface{}) (*mcp.CallToolResult, error) {
	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}
