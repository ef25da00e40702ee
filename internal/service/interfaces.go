// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/crestpointmarketing/OneSource-Cloud-CRM/internal/model"
)

// Storage defines the contract for the lead persistence layer. Core logic
// depends on this interface only, never on a concrete store.
type Storage interface {
	// Lead operations
	SaveLeads(ctx context.Context, leads []model.Lead) error
	GetLeads(ctx context.Context) ([]model.Lead, error)
	GetLeadByID(ctx context.Context, id string) (*model.Lead, error)
	GetLeadsByIDs(ctx context.Context, ids []string) ([]model.Lead, error)
	DeleteLeads(ctx context.Context, ids []string) (int, error)
	AddTagToLeads(ctx context.Context, ids []string, tag string) (int, error)
	UpdateLeadStatus(ctx context.Context, id string, status model.Status, actor string) error
	GetAllTags(ctx context.Context) ([]string, error)

	// Activity operations
	AppendActivity(ctx context.Context, leadID string, activity model.Activity) error

	// Task operations
	GetTasks(ctx context.Context) ([]model.Task, error)
	SaveTask(ctx context.Context, task *model.Task) error
	CompleteTask(ctx context.Context, id string) error

	// Template operations
	GetTemplates(ctx context.Context) ([]model.EmailTemplate, error)
	SaveTemplate(ctx context.Context, tmpl *model.EmailTemplate) error
	DeleteTemplate(ctx context.Context, id string) error

	// Dashboard
	GetDashboardStats(ctx context.Context, now time.Time) (*DashboardStats, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// KV is a small key-value persistence contract used for saved filter
// views. Every write is a full replace of the value under the key.
type KV interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
	Close() error
}

// Dispatcher queues outbound emails for the selected leads. The engine
// only queues and reports a count; actual delivery happens out of band.
type Dispatcher interface {
	QueueEmails(ctx context.Context, leads []model.Lead) (int, error)
}

// Generator produces free text about a lead. Implementations must never
// return an error to the caller: failures are converted to fallback text.
type Generator interface {
	Summarize(ctx context.Context, lead *model.Lead) string
	DraftEmail(ctx context.Context, lead *model.Lead, tone string) string
}

// Notifier is the transient notification channel. At most one message is
// visible at a time; the newest replaces the previous one.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// Confirmer guards destructive operations behind an explicit user
// confirmation step.
type Confirmer interface {
	Confirm(prompt string) bool
}

// DashboardStats aggregates headline numbers for the dashboard.
type DashboardStats struct {
	TotalLeads       int     `json:"totalLeads"`
	NewLeadsThisWeek int     `json:"newLeadsThisWeek"`
	ConversionRate   float64 `json:"conversionRate"`
	PendingTasks     int     `json:"pendingTasks"`
}
