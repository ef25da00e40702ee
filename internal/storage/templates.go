package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/crestpointmarketing/OneSource-Cloud-CRM/internal/common"
	"github.com/crestpointmarketing/OneSource-Cloud-CRM/internal/model"
)

// GetTemplates returns all email templates ordered by name.
func (s *SQLiteStorage) GetTemplates(ctx context.Context) ([]model.EmailTemplate, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, subject, body, last_modified
		FROM email_templates
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query templates: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var templates []model.EmailTemplate
	for rows.Next() {
		var tmpl model.EmailTemplate
		if err := rows.Scan(&tmpl.ID, &tmpl.Name, &tmpl.Subject, &tmpl.Body, &tmpl.LastModified); err != nil {
			return nil, fmt.Errorf("failed to scan template: %w", err)
		}
		templates = append(templates, tmpl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating templates: %w", err)
	}
	return templates, nil
}

// SaveTemplate inserts or replaces a template by id.
func (s *SQLiteStorage) SaveTemplate(ctx context.Context, tmpl *model.EmailTemplate) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if tmpl == nil {
		return fmt.Errorf("%w: template", ErrNilParameter)
	}
	if err := validateString(tmpl.Name, "name"); err != nil {
		return err
	}
	if tmpl.ID == "" {
		tmpl.ID = uuid.NewString()
	}
	tmpl.LastModified = time.Now()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO email_templates (id, name, subject, body, last_modified)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			subject = excluded.subject,
			body = excluded.body,
			last_modified = excluded.last_modified
	`, tmpl.ID, tmpl.Name, tmpl.Subject, tmpl.Body, tmpl.LastModified)
	if err != nil {
		return fmt.Errorf("failed to save template %s: %w", tmpl.ID, err)
	}
	return nil
}

// DeleteTemplate removes a template, or returns common.ErrNotFound.
func (s *SQLiteStorage) DeleteTemplate(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM email_templates WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to count deleted templates: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("template %s: %w", id, common.ErrNotFound)
	}
	return nil
}
