// ABOUTME: ContextEntry represents a learned user preference or fact
// ABOUTME: Keyed by unique string, grouped by free-form category
package models

import "time"

// DefaultCategory is used when a context entry is stored without one.
const DefaultCategory = "general"

// ContextEntry is one learned user preference.
type ContextEntry struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	Category  string    `json:"category"`
	UpdatedAt time.Time `json:"updated_at"`
}
