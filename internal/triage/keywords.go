// ABOUTME: Keyword extraction for pattern learning
// ABOUTME: Pluggable interface with a stopword-filtering default
package triage

import (
	"strings"
	"unicode"
)

// KeywordExtractor derives pattern keywords from an email's content. The
// default is lexical; callers can substitute an LLM-backed implementation
// without touching the pattern store contract.
type KeywordExtractor interface {
	Extract(subject, body string) []string
}

// MaxKeywords caps the keyword set stored per observation.
const MaxKeywords = 8

var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "you": true, "your": true,
	"are": true, "this": true, "that": true, "with": true, "have": true,
	"from": true, "will": true, "was": true, "our": true, "not": true,
	"but": true, "all": true, "can": true, "has": true, "its": true,
	"please": true, "thanks": true, "regards": true, "hello": true,
	"would": true, "could": true, "should": true, "about": true,
	"there": true, "their": true, "been": true, "were": true, "when": true,
	"what": true, "which": true, "into": true, "more": true, "just": true,
}

// StopwordExtractor is the default lexical keyword extractor.
type StopwordExtractor struct{}

// Extract returns up to MaxKeywords lower-cased tokens of subject+body,
// length >= 3, minus stopwords, deduplicated in first-seen order.
func (StopwordExtractor) Extract(subject, body string) []string {
	text := strings.ToLower(subject + " " + body)

	tokens := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	seen := make(map[string]bool)
	keywords := []string{}
	for _, token := range tokens {
		if len(token) < 3 || stopwords[token] || seen[token] {
			continue
		}
		seen[token] = true
		keywords = append(keywords, token)
		if len(keywords) == MaxKeywords {
			break
		}
	}

	return keywords
}
