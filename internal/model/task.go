package model

import "time"

// TaskPriority ranks how urgent a task is.
type TaskPriority string

// Task priorities.
const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// Task is a to-do item, optionally linked to a lead.
type Task struct {
	DueDate         time.Time    `json:"dueDate"`
	ID              string       `json:"id"`
	Title           string       `json:"title"`
	AssignedTo      string       `json:"assignedTo"`
	RelatedLeadID   string       `json:"relatedLeadId,omitempty"`
	RelatedLeadName string       `json:"relatedLeadName,omitempty"`
	Priority        TaskPriority `json:"priority"`
	Completed       bool         `json:"completed"`
}
