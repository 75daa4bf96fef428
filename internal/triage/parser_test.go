// ABOUTME: Tests for the classifier response parser
// ABOUTME: Pins the marker format, priority order, and fail-open defaults
package triage

import (
	"testing"

	"github.com/harper/inbox-triage/internal/models"
)

func TestExtractClassification(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		wantVerdict   models.Classification
		wantReasoning string
	}{
		{
			name:          "well formed response",
			input:         "CLASSIFICATION: IGNORE\nREASONING:\nNewsletter spam",
			wantVerdict:   models.ClassificationIgnore,
			wantReasoning: "Newsletter spam",
		},
		{
			name:          "no markers defaults to respond with full text",
			input:         "This looks like something you should answer soon.",
			wantVerdict:   models.ClassificationRespond,
			wantReasoning: "This looks like something you should answer soon.",
		},
		{
			name:          "lower case marker, no reasoning marker",
			input:         "classification: notify\nsome text",
			wantVerdict:   models.ClassificationNotify,
			wantReasoning: "classification: notify\nsome text",
		},
		{
			name:          "multi line reasoning",
			input:         "CLASSIFICATION: NOTIFY\nREASONING:\nRelease notes.\nNo reply needed.",
			wantVerdict:   models.ClassificationNotify,
			wantReasoning: "Release notes.\nNo reply needed.",
		},
		{
			name:          "unknown verdict falls back to respond",
			input:         "CLASSIFICATION: MAYBE\nREASONING:\nUnclear.",
			wantVerdict:   models.ClassificationRespond,
			wantReasoning: "Unclear.",
		},
		{
			name:          "ignore wins priority inside a combined label",
			input:         "CLASSIFICATION: IGNORE OR NOTIFY",
			wantVerdict:   models.ClassificationIgnore,
			wantReasoning: "CLASSIFICATION: IGNORE OR NOTIFY",
		},
		{
			name:          "classification line interleaved after reasoning marker",
			input:         "REASONING:\nLooks minor.\nCLASSIFICATION: IGNORE",
			wantVerdict:   models.ClassificationIgnore,
			wantReasoning: "Looks minor.\nCLASSIFICATION: IGNORE",
		},
		{
			name:          "reasoning on the marker line itself keeps full text",
			input:         "CLASSIFICATION: IGNORE\nREASONING: inline explanation",
			wantVerdict:   models.ClassificationIgnore,
			wantReasoning: "CLASSIFICATION: IGNORE\nREASONING: inline explanation",
		},
		{
			name:          "trailing reasoning marker keeps full text",
			input:         "CLASSIFICATION: NOTIFY\nREASONING:",
			wantVerdict:   models.ClassificationNotify,
			wantReasoning: "CLASSIFICATION: NOTIFY\nREASONING:",
		},
		{
			name:          "first classification line wins",
			input:         "CLASSIFICATION: NOTIFY\nCLASSIFICATION: IGNORE",
			wantVerdict:   models.ClassificationNotify,
			wantReasoning: "CLASSIFICATION: NOTIFY\nCLASSIFICATION: IGNORE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict, reasoning := ExtractClassification(tt.input)
			if verdict != tt.wantVerdict {
				t.Errorf("verdict = %q, want %q", verdict, tt.wantVerdict)
			}
			if reasoning != tt.wantReasoning {
				t.Errorf("reasoning = %q, want %q", reasoning, tt.wantReasoning)
			}
		})
	}
}
