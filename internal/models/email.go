// ABOUTME: EmailRecord and Classification types for triage decisions
// ABOUTME: One record per processed email, stored in the email_history table
package models

import (
	"fmt"
	"strings"
	"time"
)

// Classification is the triage verdict assigned to an email.
type Classification string

const (
	// ClassificationIgnore marks emails that can be safely skipped.
	ClassificationIgnore Classification = "ignore"
	// ClassificationRespond marks emails that require a reply.
	ClassificationRespond Classification = "respond"
	// ClassificationNotify marks important emails that need no response.
	ClassificationNotify Classification = "notify"
)

// Classifications lists all valid verdicts in report order.
var Classifications = []Classification{ClassificationIgnore, ClassificationNotify, ClassificationRespond}

// ParseClassification normalizes a label to its canonical lower-case form.
func ParseClassification(s string) (Classification, error) {
	switch Classification(strings.ToLower(strings.TrimSpace(s))) {
	case ClassificationIgnore:
		return ClassificationIgnore, nil
	case ClassificationRespond:
		return ClassificationRespond, nil
	case ClassificationNotify:
		return ClassificationNotify, nil
	}
	return "", fmt.Errorf("unknown classification %q", s)
}

// Valid reports whether c is one of the three known verdicts.
func (c Classification) Valid() bool {
	_, err := ParseClassification(string(c))
	return err == nil
}

// EmailRecord is one durable triage decision.
type EmailRecord struct {
	EmailID        string         `json:"email_id"`
	Author         string         `json:"author"`
	Subject        string         `json:"subject"`
	Classification Classification `json:"classification"`
	Reasoning      string         `json:"reasoning"`
	ThreadSummary  string         `json:"thread_summary"`
	Timestamp      time.Time      `json:"timestamp"`
	ResponseSent   bool           `json:"response_sent"`
	RawContent     string         `json:"raw_content"`
}

// IncomingEmail is the inbound record shape produced by the mail-fetch client.
type IncomingEmail struct {
	ID        string `json:"id"`
	Sender    string `json:"sender"`
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

// ExtractDomain returns the lower-cased portion of an address after the '@'.
// Addresses without an '@' are returned whole, lower-cased.
func ExtractDomain(email string) string {
	if i := strings.LastIndex(email, "@"); i >= 0 {
		return strings.ToLower(email[i+1:])
	}
	return strings.ToLower(email)
}
