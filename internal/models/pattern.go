// ABOUTME: ConversationPattern aggregates sender-domain behavior
// ABOUTME: One live row per (author_domain, typical_classification) pair
package models

import "time"

// ConversationPattern is a learned behavioral signal for a sender domain.
type ConversationPattern struct {
	AuthorDomain          string         `json:"author_domain"`
	TypicalClassification Classification `json:"typical_classification"`
	Keywords              []string       `json:"keywords"`
	Frequency             int            `json:"frequency"`
	LastSeen              time.Time      `json:"last_seen"`
}
