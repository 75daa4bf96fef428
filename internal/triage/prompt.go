// ABOUTME: Prompt assembly for the triage classifier
// ABOUTME: Embeds user profile, triage rules, sender history, and response format
package triage

import (
	"fmt"

	"github.com/harper/inbox-triage/internal/models"
)

// Profile describes the user on whose behalf email is triaged.
type Profile struct {
	FullName   string
	Name       string
	Background string
}

// TriageRules are the natural-language routing instructions per verdict.
type TriageRules struct {
	Ignore  string
	Notify  string
	Respond string
}

// DefaultProfile is used until the caller provides one.
var DefaultProfile = Profile{
	FullName:   "The user",
	Name:       "the user",
	Background: "a busy professional who wants only actionable email surfaced",
}

// DefaultRules capture the baseline routing policy.
var DefaultRules = TriageRules{
	Ignore:  "Marketing newsletters, spam, mass promotional emails",
	Notify:  "Meeting invites, build or deploy notifications, FYI threads with important information",
	Respond: "Direct questions, meeting requests, anything from a direct report or manager that needs an answer",
}

const systemPromptFormat = `You are %s's executive email assistant. %s is %s.

Your job is to triage each incoming email into exactly one category:

IGNORE - %s
NOTIFY - %s
RESPOND - %s

Prior interactions with this sender:
%s`

const userPromptFormat = `Please triage this email:

From: %s
To: %s
Subject: %s

%s`

const responseFormatInstruction = `Answer in exactly this format:

CLASSIFICATION: <IGNORE|NOTIFY|RESPOND>
REASONING:
<one or more lines explaining the decision>`

// BuildTriagePrompt combines the system framing, the email under triage, and
// the response format instruction into the single prompt string sent to the
// classifier.
func BuildTriagePrompt(profile Profile, rules TriageRules, email *models.IncomingEmail, authorHistory string) string {
	systemPrompt := fmt.Sprintf(systemPromptFormat,
		profile.FullName, profile.Name, profile.Background,
		rules.Ignore, rules.Notify, rules.Respond,
		authorHistory)

	userPrompt := fmt.Sprintf(userPromptFormat,
		email.Sender, email.Recipient, email.Subject, email.Body)

	return systemPrompt + "\n\n" + userPrompt + "\n\n" + responseFormatInstruction
}
