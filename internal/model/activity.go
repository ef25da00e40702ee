package model

import "time"

// ActivityType categorizes a timeline entry.
type ActivityType string

// Recognized activity types.
const (
	ActivityEmail        ActivityType = "email"
	ActivityCall         ActivityType = "call"
	ActivityMeeting      ActivityType = "meeting"
	ActivityNote         ActivityType = "note"
	ActivityStatusChange ActivityType = "status_change"
)

// ValidActivityType reports whether t is one of the recognized types.
func ValidActivityType(t ActivityType) bool {
	switch t {
	case ActivityEmail, ActivityCall, ActivityMeeting, ActivityNote, ActivityStatusChange:
		return true
	default:
		return false
	}
}

// Activity is an immutable timeline entry attached to a lead. Entries are
// created by the store or by user actions and never mutated afterwards.
type Activity struct {
	Timestamp time.Time    `json:"timestamp"`
	ID        string       `json:"id"`
	Type      ActivityType `json:"type"`
	Content   string       `json:"content"`
	User      string       `json:"user"`
}
