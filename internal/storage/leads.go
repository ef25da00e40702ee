package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/crestpointmarketing/OneSource-Cloud-CRM/internal/common"
	"github.com/crestpointmarketing/OneSource-Cloud-CRM/internal/model"
)

// SaveLeads inserts leads into the database. Leads without an id are
// assigned one; embedded activities are saved alongside.
func (s *SQLiteStorage) SaveLeads(ctx context.Context, leads []model.Lead) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	for i := range leads {
		if leads[i].ID == "" {
			leads[i].ID = model.NewLeadID()
		}
		if leads[i].LastContact.IsZero() {
			leads[i].LastContact = time.Now()
		}
	}
	if err := validateLeads(leads); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO leads (
			id, name, company, email, phone, status, source, tags, owner, last_contact
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i := range leads {
		lead := &leads[i]

		tagsJSON, marshalErr := json.Marshal(lead.Tags)
		if marshalErr != nil {
			return fmt.Errorf("failed to encode tags for lead %s: %w", lead.ID, marshalErr)
		}

		if _, err = stmt.ExecContext(ctx,
			lead.ID,
			lead.Name,
			lead.Company,
			lead.Email,
			lead.Phone,
			string(lead.Status),
			string(lead.Source),
			string(tagsJSON),
			lead.Owner,
			lead.LastContact,
		); err != nil {
			return fmt.Errorf("failed to insert lead %s: %w", lead.ID, err)
		}

		for _, activity := range lead.Activities {
			if err := insertActivityTx(ctx, tx, lead.ID, activity); err != nil {
				return err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit leads: %w", err)
	}

	slog.Debug("saved leads", "count", len(leads))
	return nil
}

const leadColumns = `id, name, company, email, phone, status, source, tags, owner, last_contact`

// GetLeads returns every lead with its activity timeline, ordered by
// creation (id order for generated ids).
func (s *SQLiteStorage) GetLeads(ctx context.Context) ([]model.Lead, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT `+leadColumns+` FROM leads ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to query leads: %w", err)
	}
	defer func() { _ = rows.Close() }()

	leads, err := scanLeads(rows)
	if err != nil {
		return nil, err
	}

	if err := s.attachActivities(ctx, leads); err != nil {
		return nil, err
	}
	return leads, nil
}

// GetLeadByID returns a single lead, or common.ErrNotFound.
func (s *SQLiteStorage) GetLeadByID(ctx context.Context, id string) (*model.Lead, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = ?`, id)
	lead, err := scanLead(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("lead %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query lead: %w", err)
	}

	leads := []model.Lead{*lead}
	if err := s.attachActivities(ctx, leads); err != nil {
		return nil, err
	}
	return &leads[0], nil
}

// GetLeadsByIDs returns the leads for the given ids, preserving the id
// order. Missing ids are silently skipped.
func (s *SQLiteStorage) GetLeadsByIDs(ctx context.Context, ids []string) ([]model.Lead, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT ` + leadColumns + ` FROM leads WHERE id IN (?` +
		strings.Repeat(",?", len(ids)-1) + `)`
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query leads: %w", err)
	}
	defer func() { _ = rows.Close() }()

	found, err := scanLeads(rows)
	if err != nil {
		return nil, err
	}
	if err := s.attachActivities(ctx, found); err != nil {
		return nil, err
	}

	byID := make(map[string]model.Lead, len(found))
	for _, lead := range found {
		byID[lead.ID] = lead
	}

	ordered := make([]model.Lead, 0, len(found))
	for _, id := range ids {
		if lead, ok := byID[id]; ok {
			ordered = append(ordered, lead)
		}
	}
	return ordered, nil
}

// DeleteLeads removes every lead whose id is in ids and returns the count
// actually removed. Missing ids are a no-op, not an error.
func (s *SQLiteStorage) DeleteLeads(ctx context.Context, ids []string) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, fmt.Errorf("%w: ids", ErrEmptySlice)
	}

	query := `DELETE FROM leads WHERE id IN (?` + strings.Repeat(",?", len(ids)-1) + `)`
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete leads: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted leads: %w", err)
	}

	slog.Info("deleted leads", "requested", len(ids), "deleted", affected)
	return int(affected), nil
}

// AddTagToLeads appends tag to each lead's tag set unless already present.
// Returns the number of leads whose tag set changed; idempotent per lead.
func (s *SQLiteStorage) AddTagToLeads(ctx context.Context, ids []string, tag string) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if strings.TrimSpace(tag) == "" {
		return 0, fmt.Errorf("%w: tag name is empty", common.ErrValidation)
	}
	if len(ids) == 0 {
		return 0, fmt.Errorf("%w: ids", ErrEmptySlice)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	affected := 0
	for _, id := range ids {
		var tagsJSON sql.NullString
		err := tx.QueryRowContext(ctx, `SELECT tags FROM leads WHERE id = ?`, id).Scan(&tagsJSON)
		if err == sql.ErrNoRows {
			continue // stale selection ids are pruned implicitly
		}
		if err != nil {
			return 0, fmt.Errorf("failed to read tags for lead %s: %w", id, err)
		}

		tags := decodeTags(tagsJSON)
		lead := model.Lead{Tags: tags}
		if !lead.AddTag(tag) {
			continue
		}

		updated, marshalErr := json.Marshal(lead.Tags)
		if marshalErr != nil {
			return 0, fmt.Errorf("failed to encode tags for lead %s: %w", id, marshalErr)
		}
		if _, err := tx.ExecContext(ctx, `UPDATE leads SET tags = ? WHERE id = ?`, string(updated), id); err != nil {
			return 0, fmt.Errorf("failed to update tags for lead %s: %w", id, err)
		}
		affected++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit tag update: %w", err)
	}

	slog.Info("tagged leads", "tag", tag, "affected", affected)
	return affected, nil
}

// UpdateLeadStatus moves a lead to a new pipeline status and appends a
// status_change activity recording who did it.
func (s *SQLiteStorage) UpdateLeadStatus(ctx context.Context, id string, status model.Status, actor string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}
	if _, ok := model.ParseStatus(string(status)); !ok {
		return fmt.Errorf("%w: unknown status %q", common.ErrValidation, status)
	}

	result, err := s.db.ExecContext(ctx, `UPDATE leads SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to count updated leads: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("lead %s: %w", id, common.ErrNotFound)
	}

	activity := model.Activity{
		ID:        uuid.NewString(),
		Type:      model.ActivityStatusChange,
		Content:   fmt.Sprintf("Changed status to %s", status),
		Timestamp: time.Now(),
		User:      actor,
	}
	return s.AppendActivity(ctx, id, activity)
}

// GetAllTags returns the distinct tags across all leads, sorted.
func (s *SQLiteStorage) GetAllTags(ctx context.Context) ([]string, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT tags FROM leads`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}
	defer func() { _ = rows.Close() }()

	seen := make(map[string]bool)
	for rows.Next() {
		var tagsJSON sql.NullString
		if err := rows.Scan(&tagsJSON); err != nil {
			return nil, fmt.Errorf("failed to scan tags: %w", err)
		}
		for _, tag := range decodeTags(tagsJSON) {
			seen[tag] = true
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tags: %w", err)
	}

	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags, nil
}

// AppendActivity adds an immutable timeline entry to a lead.
func (s *SQLiteStorage) AppendActivity(ctx context.Context, leadID string, activity model.Activity) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(leadID, "leadID"); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := insertActivityTx(ctx, tx, leadID, activity); err != nil {
		return err
	}
	return tx.Commit()
}

func insertActivityTx(ctx context.Context, tx *sql.Tx, leadID string, activity model.Activity) error {
	if err := validateActivity(&activity); err != nil {
		return err
	}
	if activity.Timestamp.IsZero() {
		activity.Timestamp = time.Now()
	}
	_, err := tx.ExecContext(ctx, `
		INSERT INTO activities (id, lead_id, type, content, timestamp, user_name)
		VALUES (?, ?, ?, ?, ?, ?)
	`, activity.ID, leadID, string(activity.Type), activity.Content, activity.Timestamp, activity.User)
	if err != nil {
		return fmt.Errorf("failed to insert activity %s: %w", activity.ID, err)
	}
	return nil
}

// attachActivities loads each lead's timeline, newest first.
func (s *SQLiteStorage) attachActivities(ctx context.Context, leads []model.Lead) error {
	if len(leads) == 0 {
		return nil
	}

	index := make(map[string]*model.Lead, len(leads))
	ids := make([]any, 0, len(leads))
	for i := range leads {
		index[leads[i].ID] = &leads[i]
		ids = append(ids, leads[i].ID)
	}

	query := `
		SELECT lead_id, id, type, content, timestamp, user_name
		FROM activities
		WHERE lead_id IN (?` + strings.Repeat(",?", len(ids)-1) + `)
		ORDER BY timestamp DESC`

	rows, err := s.db.QueryContext(ctx, query, ids...)
	if err != nil {
		return fmt.Errorf("failed to query activities: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var leadID string
		var activity model.Activity
		var activityType, userName sql.NullString
		if err := rows.Scan(&leadID, &activity.ID, &activityType, &activity.Content, &activity.Timestamp, &userName); err != nil {
			return fmt.Errorf("failed to scan activity: %w", err)
		}
		activity.Type = model.ActivityType(activityType.String)
		activity.User = userName.String
		if lead, ok := index[leadID]; ok {
			lead.Activities = append(lead.Activities, activity)
		}
	}
	return rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (*model.Lead, error) {
	var lead model.Lead
	var phone, tagsJSON, owner sql.NullString
	var status, source string

	err := row.Scan(
		&lead.ID, &lead.Name, &lead.Company, &lead.Email, &phone,
		&status, &source, &tagsJSON, &owner, &lead.LastContact,
	)
	if err != nil {
		return nil, err
	}

	lead.Phone = phone.String
	lead.Owner = owner.String
	lead.Status, _ = model.ParseStatus(status)
	lead.Source, _ = model.ParseSource(source)
	lead.Tags = decodeTags(tagsJSON)
	return &lead, nil
}

func scanLeads(rows *sql.Rows) ([]model.Lead, error) {
	var leads []model.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lead: %w", err)
		}
		leads = append(leads, *lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating leads: %w", err)
	}
	return leads, nil
}

func decodeTags(tagsJSON sql.NullString) []string {
	if !tagsJSON.Valid || tagsJSON.String == "" {
		return []string{}
	}
	var tags []string
	if err := json.Unmarshal([]byte(tagsJSON.String), &tags); err != nil {
		slog.Warn("ignoring malformed tags column", "error", err)
		return []string{}
	}
	if tags == nil {
		return []string{}
	}
	return tags
}
