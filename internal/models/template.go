// ABOUTME: ResponseTemplate holds canned reply content for the respond route
// ABOUTME: Name-keyed upsert; fetching for use bumps use_count and last_used
package models

import "time"

// ResponseTemplate is a reusable reply draft.
type ResponseTemplate struct {
	TemplateID int64      `json:"template_id"`
	Name       string     `json:"template_name"`
	Content    string     `json:"template_content"`
	UseCount   int        `json:"use_count"`
	Category   string     `json:"category"`
	CreatedAt  time.Time  `json:"created_at"`
	LastUsed   *time.Time `json:"last_used,omitempty"`
}
