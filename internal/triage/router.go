// ABOUTME: Classification pipeline that routes each email to an outcome
// ABOUTME: Context fetch, classifier call, parse, persist, pattern learning
package triage

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/harper/inbox-triage/internal/models"
	"github.com/harper/inbox-triage/internal/storage/sqlite"
)

// DefaultReplyTemplate names the template used to seed respond outcomes.
const DefaultReplyTemplate = "default"

// Classifier is the external language-model collaborator. The response is
// free text parsed by ExtractClassification.
type Classifier interface {
	Classify(ctx context.Context, prompt string) (string, error)
}

// Outcome is the routed result for one email.
type Outcome struct {
	ProcessingID string                `json:"processing_id"`
	Action       models.Classification `json:"action"`
	Reason       string                `json:"reason"`
	Email        *models.IncomingEmail `json:"email,omitempty"`
	Response     string                `json:"response,omitempty"`
	Stored       bool                  `json:"stored"`
}

// Router orchestrates the per-email classification pipeline. All memory
// access goes through the injected storage; the router never touches the
// underlying tables.
type Router struct {
	store      *sqlite.Storage
	classifier Classifier
	keywords   KeywordExtractor
	profile    Profile
	rules      TriageRules
	limit      int
	now        func() time.Time
}

// NewRouter creates a pipeline over the given memory and classifier.
func NewRouter(store *sqlite.Storage, classifier Classifier) *Router {
	return &Router{
		store:      store,
		classifier: classifier,
		keywords:   StopwordExtractor{},
		profile:    DefaultProfile,
		rules:      DefaultRules,
		limit:      sqlite.DefaultHistoryLimit,
		now:        time.Now,
	}
}

// SetProfile replaces the user profile embedded in prompts.
func (r *Router) SetProfile(profile Profile) {
	r.profile = profile
}

// SetRules replaces the triage rules embedded in prompts.
func (r *Router) SetRules(rules TriageRules) {
	r.rules = rules
}

// SetKeywordExtractor swaps the pattern-learning keyword source.
func (r *Router) SetKeywordExtractor(ex KeywordExtractor) {
	r.keywords = ex
}

// TriageEmail classifies one email and routes it. The returned error is
// reserved for classifier failures; storage faults are logged, flagged on
// the outcome, and never abort the pipeline.
func (r *Router) TriageEmail(ctx context.Context, email *models.IncomingEmail) (*Outcome, error) {
	authorDomain := models.ExtractDomain(email.Sender)

	history, err := r.store.FormatAuthorHistory(email.Sender, r.limit)
	if err != nil {
		log.Printf("[Router] failed to load history for %s: %v", email.Sender, err)
		history = sqlite.NoHistorySentinel
	}

	prompt := BuildTriagePrompt(r.profile, r.rules, email, history)

	raw, err := r.classifier.Classify(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("classifier call failed for %s: %w", email.ID, err)
	}

	classification, reasoning := ExtractClassification(raw)

	record := &models.EmailRecord{
		EmailID:        email.ID,
		Author:         email.Sender,
		Subject:        email.Subject,
		Classification: classification,
		Reasoning:      reasoning,
		ThreadSummary:  email.Subject,
		Timestamp:      r.now(),
		RawContent:     email.Body,
	}

	stored := true
	if err := r.store.Emails().Save(record); err != nil {
		log.Printf("[Router] failed to store decision for %s: %v", email.ID, err)
		stored = false
	}

	// Pattern learning: one observation per classified email
	keywords := r.keywords.Extract(email.Subject, email.Body)
	if err := r.store.ObservePattern(authorDomain, classification, keywords); err != nil {
		log.Printf("[Router] failed to observe pattern for %s: %v", authorDomain, err)
	}

	outcome := &Outcome{
		ProcessingID: uuid.New().String(),
		Action:       classification,
		Reason:       reasoning,
		Stored:       stored,
	}

	switch classification {
	case models.ClassificationIgnore:
		// Reason only
	case models.ClassificationNotify:
		outcome.Email = email
	case models.ClassificationRespond:
		outcome.Email = email
		outcome.Response = r.replyPlaceholder()
	}

	return outcome, nil
}

// TriageBatch processes emails sequentially, skipping items whose classifier
// call fails so one bad message never aborts the run.
func (r *Router) TriageBatch(ctx context.Context, emails []models.IncomingEmail) []Outcome {
	outcomes := make([]Outcome, 0, len(emails))

	for i := range emails {
		outcome, err := r.TriageEmail(ctx, &emails[i])
		if err != nil {
			log.Printf("[Router] skipping %s: %v", emails[i].ID, err)
			continue
		}
		outcomes = append(outcomes, *outcome)
	}

	return outcomes
}

// replyPlaceholder returns the default reply template content, or an empty
// string when no template is configured.
func (r *Router) replyPlaceholder() string {
	tmpl, err := r.store.Templates().Use(DefaultReplyTemplate)
	if err != nil {
		log.Printf("[Router] failed to load reply template: %v", err)
		return ""
	}
	if tmpl == nil {
		return ""
	}
	return tmpl.Content
}
