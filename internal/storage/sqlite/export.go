// ABOUTME: Full-snapshot export of all triage memory tables
// ABOUTME: Supports JSON and YAML encodings, one collection per table
package sqlite

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ExportData is the complete exportable snapshot, one collection per table.
type ExportData struct {
	Version              string           `yaml:"version" json:"version"`
	ExportedAt           string           `yaml:"exported_at" json:"exported_at"`
	Tool                 string           `yaml:"tool" json:"tool"`
	EmailHistory         []ExportEmail    `yaml:"email_history" json:"email_history"`
	UserContext          []ExportContext  `yaml:"user_context" json:"user_context"`
	ConversationPatterns []ExportPattern  `yaml:"conversation_patterns" json:"conversation_patterns"`
	ResponseTemplates    []ExportTemplate `yaml:"response_templates" json:"response_templates"`
}

// ExportEmail is one email_history row for export
type ExportEmail struct {
	EmailID        string `yaml:"email_id" json:"email_id"`
	Author         string `yaml:"author" json:"author"`
	Subject        string `yaml:"subject" json:"subject"`
	Classification string `yaml:"classification" json:"classification"`
	Reasoning      string `yaml:"reasoning,omitempty" json:"reasoning,omitempty"`
	ThreadSummary  string `yaml:"thread_summary,omitempty" json:"thread_summary,omitempty"`
	Timestamp      string `yaml:"timestamp" json:"timestamp"`
	ResponseSent   bool   `yaml:"response_sent" json:"response_sent"`
	RawContent     string `yaml:"raw_content,omitempty" json:"raw_content,omitempty"`
}

// ExportContext is one user_context row for export
type ExportContext struct {
	Key       string `yaml:"key" json:"key"`
	Value     string `yaml:"value" json:"value"`
	Category  string `yaml:"category" json:"category"`
	UpdatedAt string `yaml:"updated_at" json:"updated_at"`
}

// ExportPattern is one conversation_patterns row for export
type ExportPattern struct {
	AuthorDomain          string   `yaml:"author_domain" json:"author_domain"`
	TypicalClassification string   `yaml:"typical_classification" json:"typical_classification"`
	Keywords              []string `yaml:"keywords" json:"keywords"`
	Frequency             int      `yaml:"frequency" json:"frequency"`
	LastSeen              string   `yaml:"last_seen" json:"last_seen"`
}

// ExportTemplate is one response_templates row for export
type ExportTemplate struct {
	Name      string `yaml:"template_name" json:"template_name"`
	Content   string `yaml:"template_content" json:"template_content"`
	UseCount  int    `yaml:"use_count" json:"use_count"`
	Category  string `yaml:"category" json:"category"`
	CreatedAt string `yaml:"created_at" json:"created_at"`
	LastUsed  string `yaml:"last_used,omitempty" json:"last_used,omitempty"`
}

// Export reads all tables into a snapshot document
func (s *Storage) Export() (*ExportData, error) {
	data := &ExportData{
		Version:              "1.0",
		ExportedAt:           time.Now().UTC().Format(time.RFC3339),
		Tool:                 "inbox-triage",
		EmailHistory:         []ExportEmail{},
		UserContext:          []ExportContext{},
		ConversationPatterns: []ExportPattern{},
		ResponseTemplates:    []ExportTemplate{},
	}

	rows, err := s.db.Query(`
		SELECT email_id, author, subject, classification, reasoning,
		       thread_summary, timestamp, response_sent, raw_content
		FROM email_history
		ORDER BY timestamp DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query email history: %w", err)
	}
	records, err := s.emails.scanRecords(rows)
	_ = rows.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to scan email history: %w", err)
	}
	for _, r := range records {
		data.EmailHistory = append(data.EmailHistory, ExportEmail{
			EmailID:        r.EmailID,
			Author:         r.Author,
			Subject:        r.Subject,
			Classification: string(r.Classification),
			Reasoning:      r.Reasoning,
			ThreadSummary:  r.ThreadSummary,
			Timestamp:      r.Timestamp.UTC().Format(time.RFC3339),
			ResponseSent:   r.ResponseSent,
			RawContent:     r.RawContent,
		})
	}

	entries, err := s.context.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list user context: %w", err)
	}
	for _, e := range entries {
		data.UserContext = append(data.UserContext, ExportContext{
			Key:       e.Key,
			Value:     e.Value,
			Category:  e.Category,
			UpdatedAt: e.UpdatedAt.UTC().Format(time.RFC3339),
		})
	}

	patterns, err := s.patterns.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list patterns: %w", err)
	}
	for _, p := range patterns {
		data.ConversationPatterns = append(data.ConversationPatterns, ExportPattern{
			AuthorDomain:          p.AuthorDomain,
			TypicalClassification: string(p.TypicalClassification),
			Keywords:              p.Keywords,
			Frequency:             p.Frequency,
			LastSeen:              p.LastSeen.UTC().Format(time.RFC3339),
		})
	}

	templates, err := s.templates.List("")
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	for _, t := range templates {
		exported := ExportTemplate{
			Name:      t.Name,
			Content:   t.Content,
			UseCount:  t.UseCount,
			Category:  t.Category,
			CreatedAt: t.CreatedAt.UTC().Format(time.RFC3339),
		}
		if t.LastUsed != nil {
			exported.LastUsed = t.LastUsed.UTC().Format(time.RFC3339)
		}
		data.ResponseTemplates = append(data.ResponseTemplates, exported)
	}

	return data, nil
}

// ExportToJSON writes the full snapshot to a JSON file
func (s *Storage) ExportToJSON(outputPath string) error {
	data, err := s.Export()
	if err != nil {
		return err
	}

	file, err := createExportFile(outputPath)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}

// ExportToYAML writes the full snapshot to a YAML file
func (s *Storage) ExportToYAML(outputPath string) error {
	data, err := s.Export()
	if err != nil {
		return err
	}

	file, err := createExportFile(outputPath)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}

func createExportFile(outputPath string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(outputPath) // #nosec G304
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return file, nil
}
