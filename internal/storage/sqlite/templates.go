// ABOUTME: Response template storage operations for SQLite
// ABOUTME: Name-keyed upsert; fetching for use bumps use_count and last_used
package sqlite

import (
	"database/sql"
	"time"

	"github.com/harper/inbox-triage/internal/models"
)

// TemplateStore handles canned reply template persistence
type TemplateStore struct {
	db *DB
}

// NewTemplateStore creates a new TemplateStore
func NewTemplateStore(db *DB) *TemplateStore {
	return &TemplateStore{db: db}
}

// Save upserts a template by name. Use count and creation time survive
// content updates.
func (s *TemplateStore) Save(name, content, category string) error {
	if category == "" {
		category = models.DefaultCategory
	}

	_, err := s.db.Exec(`
		INSERT INTO response_templates (template_name, template_content, category, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(template_name) DO UPDATE SET
			template_content = excluded.template_content,
			category = excluded.category
	`, name, content, category, time.Now().UTC())

	return err
}

// Get retrieves a template by name without touching its usage stats.
// Returns nil for an unknown name.
func (s *TemplateStore) Get(name string) (*models.ResponseTemplate, error) {
	return s.queryOne(`
		SELECT template_id, template_name, template_content, use_count, category, created_at, last_used
		FROM response_templates
		WHERE template_name = ?
	`, name)
}

// Use retrieves a template for actual use, bumping use_count and last_used.
// Returns nil for an unknown name.
func (s *TemplateStore) Use(name string) (*models.ResponseTemplate, error) {
	result, err := s.db.Exec(`
		UPDATE response_templates
		SET use_count = use_count + 1, last_used = ?
		WHERE template_name = ?
	`, time.Now().UTC(), name)
	if err != nil {
		return nil, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, nil
	}

	return s.Get(name)
}

// List returns templates in a category, most used first. An empty category
// lists everything.
func (s *TemplateStore) List(category string) ([]models.ResponseTemplate, error) {
	query := `
		SELECT template_id, template_name, template_content, use_count, category, created_at, last_used
		FROM response_templates
		ORDER BY use_count DESC, template_name ASC
	`
	args := []interface{}{}
	if category != "" {
		query = `
			SELECT template_id, template_name, template_content, use_count, category, created_at, last_used
			FROM response_templates
			WHERE category = ?
			ORDER BY use_count DESC, template_name ASC
		`
		args = append(args, category)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var templates []models.ResponseTemplate
	for rows.Next() {
		var (
			tmpl     models.ResponseTemplate
			lastUsed sql.NullTime
		)
		err := rows.Scan(&tmpl.TemplateID, &tmpl.Name, &tmpl.Content,
			&tmpl.UseCount, &tmpl.Category, &tmpl.CreatedAt, &lastUsed)
		if err != nil {
			return nil, err
		}
		if lastUsed.Valid {
			t := lastUsed.Time
			tmpl.LastUsed = &t
		}
		templates = append(templates, tmpl)
	}

	return templates, rows.Err()
}

func (s *TemplateStore) queryOne(query string, args ...interface{}) (*models.ResponseTemplate, error) {
	var (
		tmpl     models.ResponseTemplate
		lastUsed sql.NullTime
	)

	err := s.db.QueryRow(query, args...).Scan(&tmpl.TemplateID, &tmpl.Name,
		&tmpl.Content, &tmpl.UseCount, &tmpl.Category, &tmpl.CreatedAt, &lastUsed)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if lastUsed.Valid {
		t := lastUsed.Time
		tmpl.LastUsed = &t
	}

	return &tmpl, nil
}
