// ABOUTME: Tests for classification parsing and domain extraction
// ABOUTME: Covers normalization, unknown labels, and no-@ fallback
package models

import "testing"

func TestParseClassification(t *testing.T) {
	tests := []struct {
		input   string
		want    Classification
		wantErr bool
	}{
		{"ignore", ClassificationIgnore, false},
		{"RESPOND", ClassificationRespond, false},
		{"  Notify ", ClassificationNotify, false},
		{"spam", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseClassification(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseClassification(%q) expected error, got %q", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseClassification(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseClassification(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestClassificationValid(t *testing.T) {
	if !ClassificationNotify.Valid() {
		t.Error("notify should be valid")
	}
	if Classification("urgent").Valid() {
		t.Error("urgent should not be valid")
	}
}

func TestExtractDomain(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"jane@acme.com", "acme.com"},
		{"JANE@ACME.COM", "acme.com"},
		{"not-an-email", "not-an-email"},
		{"Mixed-Case-No-At", "mixed-case-no-at"},
		{"quoted@user@corp.io", "corp.io"},
	}

	for _, tt := range tests {
		if got := ExtractDomain(tt.input); got != tt.want {
			t.Errorf("ExtractDomain(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
