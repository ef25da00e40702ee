package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/crestpointmarketing/OneSource-Cloud-CRM/internal/common"
	"github.com/crestpointmarketing/OneSource-Cloud-CRM/internal/model"
)

// GetTasks returns all tasks ordered by due date, soonest first.
func (s *SQLiteStorage) GetTasks(ctx context.Context) ([]model.Task, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, due_date, completed, assigned_to, related_lead_id, related_lead_name, priority
		FROM tasks
		ORDER BY due_date ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []model.Task
	for rows.Next() {
		var task model.Task
		var assignedTo, leadID, leadName sql.NullString
		var priority string
		err := rows.Scan(
			&task.ID, &task.Title, &task.DueDate, &task.Completed,
			&assignedTo, &leadID, &leadName, &priority,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		task.AssignedTo = assignedTo.String
		task.RelatedLeadID = leadID.String
		task.RelatedLeadName = leadName.String
		task.Priority = model.TaskPriority(priority)
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tasks: %w", err)
	}
	return tasks, nil
}

// SaveTask inserts a task, assigning an id if absent.
func (s *SQLiteStorage) SaveTask(ctx context.Context, task *model.Task) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if task == nil {
		return fmt.Errorf("%w: task", ErrNilParameter)
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	if task.DueDate.IsZero() {
		task.DueDate = time.Now()
	}
	if task.Priority == "" {
		task.Priority = model.PriorityMedium
	}
	if err := validateTask(task); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (id, title, due_date, completed, assigned_to, related_lead_id, related_lead_name, priority)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, task.ID, task.Title, task.DueDate, task.Completed,
		task.AssignedTo, task.RelatedLeadID, task.RelatedLeadName, string(task.Priority))
	if err != nil {
		return fmt.Errorf("failed to insert task %s: %w", task.ID, err)
	}
	return nil
}

// CompleteTask marks a task done, or returns common.ErrNotFound.
func (s *SQLiteStorage) CompleteTask(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `UPDATE tasks SET completed = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to complete task: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to count updated tasks: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("task %s: %w", id, common.ErrNotFound)
	}
	return nil
}
