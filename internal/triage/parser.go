// ABOUTME: Line-oriented parser for classifier responses
// ABOUTME: Extracts verdict and reasoning with explicit fail-open defaults
package triage

import (
	"strings"

	"github.com/harper/inbox-triage/internal/models"
)

const (
	classificationMarker = "CLASSIFICATION:"
	reasoningMarker      = "REASONING:"
)

// ExtractClassification parses the classifier's free-text response.
//
// The verdict comes from the first line whose upper-cased form starts with
// "CLASSIFICATION:", matched by substring against IGNORE, NOTIFY, RESPOND in
// that priority order. No marker or no match defaults to respond, the most
// attentive action.
//
// The reasoning is every line after the first "REASONING:" marker
// (case-insensitive); with no marker the reasoning is the entire raw
// response. The two passes are independent: a CLASSIFICATION: line may sit
// inside the reasoning text.
func ExtractClassification(resultText string) (models.Classification, string) {
	lines := strings.Split(strings.TrimSpace(resultText), "\n")

	classification := models.ClassificationRespond
	for _, line := range lines {
		upper := strings.ToUpper(line)
		if !strings.HasPrefix(upper, classificationMarker) {
			continue
		}
		verdict := strings.TrimSpace(strings.TrimPrefix(upper, classificationMarker))
		switch {
		case strings.Contains(verdict, "IGNORE"):
			classification = models.ClassificationIgnore
		case strings.Contains(verdict, "NOTIFY"):
			classification = models.ClassificationNotify
		case strings.Contains(verdict, "RESPOND"):
			classification = models.ClassificationRespond
		}
		break
	}

	reasoning := resultText
	inReasoning := false
	var reasoningLines []string
	for _, line := range lines {
		if strings.HasPrefix(strings.ToUpper(line), reasoningMarker) {
			inReasoning = true
			continue
		}
		if inReasoning {
			reasoningLines = append(reasoningLines, line)
		}
	}
	if len(reasoningLines) > 0 {
		reasoning = strings.Join(reasoningLines, "\n")
	}

	return classification, reasoning
}
