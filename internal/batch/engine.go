// Package batch applies bulk operations to the current lead selection.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/crestpointmarketing/OneSource-Cloud-CRM/internal/common"
	"github.com/crestpointmarketing/OneSource-Cloud-CRM/internal/selection"
	"github.com/crestpointmarketing/OneSource-Cloud-CRM/internal/service"
)

// Engine runs batch operations over the selected leads. Every operation
// clears the selection after it succeeds; a failed or declined operation
// leaves the selection intact.
type Engine struct {
	storage    service.Storage
	dispatcher service.Dispatcher
	notifier   service.Notifier
	confirmer  service.Confirmer
	selection  *selection.Tracker
}

// NewEngine wires the collaborators together.
func NewEngine(
	storage service.Storage,
	dispatcher service.Dispatcher,
	notifier service.Notifier,
	confirmer service.Confirmer,
	sel *selection.Tracker,
) *Engine {
	return &Engine{
		storage:    storage,
		dispatcher: dispatcher,
		notifier:   notifier,
		confirmer:  confirmer,
		selection:  sel,
	}
}

// Selection exposes the tracker the engine operates on.
func (e *Engine) Selection() *selection.Tracker {
	return e.selection
}

// reject surfaces a validation failure as a toast and returns it as an
// error so callers can still branch on it.
func (e *Engine) reject(message string) error {
	err := common.NewUserError(message, common.ErrValidation)
	e.notifier.Error(message)
	return err
}

// Delete removes the selected leads after an explicit confirmation.
// Declining the confirmation is a silent no-op.
func (e *Engine) Delete(ctx context.Context) error {
	count := e.selection.Count()
	if count == 0 {
		return e.reject("No leads selected.")
	}

	prompt := fmt.Sprintf("Are you sure you want to delete %d leads? This action cannot be undone.", count)
	if !e.confirmer.Confirm(prompt) {
		slog.Debug("batch delete declined", "selected", count)
		return nil
	}

	if _, err := e.storage.DeleteLeads(ctx, e.selection.IDs()); err != nil {
		e.notifier.Error(common.UserMessage(err))
		return fmt.Errorf("batch delete failed: %w", err)
	}

	e.notifier.Success(fmt.Sprintf("Successfully deleted %d leads.", count))
	e.selection.Clear()
	return nil
}

// Tag adds a tag to every selected lead. Leads already carrying the tag
// are left untouched, so repeating the operation is safe.
func (e *Engine) Tag(ctx context.Context, tag string) error {
	count := e.selection.Count()
	if count == 0 {
		return e.reject("No leads selected.")
	}
	if strings.TrimSpace(tag) == "" {
		return e.reject("Tag name cannot be empty.")
	}

	if _, err := e.storage.AddTagToLeads(ctx, e.selection.IDs(), tag); err != nil {
		e.notifier.Error(common.UserMessage(err))
		return fmt.Errorf("batch tag failed: %w", err)
	}

	e.notifier.Success(fmt.Sprintf("Added tag %q to %d leads.", tag, count))
	e.selection.Clear()
	return nil
}

// Email queues an outreach email for every selected lead through the
// dispatcher. Delivery happens out of band.
func (e *Engine) Email(ctx context.Context) error {
	count := e.selection.Count()
	if count == 0 {
		return e.reject("No leads selected.")
	}

	leads, err := e.storage.GetLeadsByIDs(ctx, e.selection.IDs())
	if err != nil {
		e.notifier.Error(common.UserMessage(err))
		return fmt.Errorf("batch email failed: %w", err)
	}

	queued, err := e.dispatcher.QueueEmails(ctx, leads)
	if err != nil {
		e.notifier.Error(common.UserMessage(err))
		return fmt.Errorf("batch email failed: %w", err)
	}

	e.notifier.Success(fmt.Sprintf("Emails successfully queued for %d recipients.", queued))
	e.selection.Clear()
	return nil
}
