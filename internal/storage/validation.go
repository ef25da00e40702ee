// Package storage provides the data persistence layer for the CRM.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/crestpointmarketing/OneSource-Cloud-CRM/internal/model"
)

// Validation errors.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrNilParameter = errors.New("parameter cannot be nil")
	ErrEmptySlice   = errors.New("slice cannot be empty")
	ErrInvalidLead  = errors.New("invalid lead")
	ErrInvalidTask  = errors.New("invalid task")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateLeads validates a slice of leads.
func validateLeads(leads []model.Lead) error {
	if leads == nil {
		return fmt.Errorf("%w: leads", ErrNilParameter)
	}
	if len(leads) == 0 {
		return fmt.Errorf("%w: leads", ErrEmptySlice)
	}

	for i := range leads {
		if err := validateLead(&leads[i]); err != nil {
			return fmt.Errorf("lead at index %d: %w", i, err)
		}
	}
	return nil
}

// validateLead validates a single lead. Only the fields the store itself
// defaults are required; name and email rules belong to the CSV import
// mapping, and JSON-imported records may legitimately lack either.
func validateLead(lead *model.Lead) error {
	if lead == nil {
		return fmt.Errorf("%w: lead", ErrNilParameter)
	}
	if lead.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidLead)
	}
	if lead.LastContact.IsZero() {
		return fmt.Errorf("%w: missing last contact", ErrInvalidLead)
	}
	return nil
}

// validateActivity validates an activity entry.
func validateActivity(activity *model.Activity) error {
	if activity == nil {
		return fmt.Errorf("%w: activity", ErrNilParameter)
	}
	if activity.ID == "" {
		return fmt.Errorf("%w: activity missing ID", ErrInvalidLead)
	}
	if !model.ValidActivityType(activity.Type) {
		return fmt.Errorf("%w: unknown activity type %q", ErrInvalidLead, activity.Type)
	}
	return nil
}

// validateTask validates a task.
func validateTask(task *model.Task) error {
	if task == nil {
		return fmt.Errorf("%w: task", ErrNilParameter)
	}
	if task.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidTask)
	}
	if strings.TrimSpace(task.Title) == "" {
		return fmt.Errorf("%w: missing title", ErrInvalidTask)
	}
	return nil
}
