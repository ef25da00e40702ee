// Package model defines the core domain types for the CRM.
package model

import (
	"time"
)

// Status tracks a lead through the sales pipeline.
type Status string

// Pipeline statuses, in funnel order.
const (
	StatusNew           Status = "New Lead"
	StatusEngaged       Status = "Engaged"
	StatusQualification Status = "Qualification"
	StatusProposal      Status = "Proposal"
	StatusNegotiation   Status = "Negotiation"
	StatusWon           Status = "Won"
	StatusLost          Status = "Lost"
)

// Statuses lists every valid pipeline status.
func Statuses() []Status {
	return []Status{
		StatusNew,
		StatusEngaged,
		StatusQualification,
		StatusProposal,
		StatusNegotiation,
		StatusWon,
		StatusLost,
	}
}

// ParseStatus maps a raw string to a Status. Unrecognized values fall back
// to StatusNew and report ok=false, matching the lenient import contract.
func ParseStatus(s string) (Status, bool) {
	for _, status := range Statuses() {
		if string(status) == s {
			return status, true
		}
	}
	return StatusNew, false
}

// Source identifies where a lead came from.
type Source string

// Recognized lead sources.
const (
	SourceWebsite  Source = "Website"
	SourceLinkedIn Source = "LinkedIn"
	SourceReferral Source = "Referral"
	SourceEvent    Source = "Event"
	SourceColdCall Source = "Cold Call"
)

// Sources lists every valid lead source.
func Sources() []Source {
	return []Source{
		SourceWebsite,
		SourceLinkedIn,
		SourceReferral,
		SourceEvent,
		SourceColdCall,
	}
}

// ParseSource maps a raw string to a Source, falling back to SourceWebsite
// for unrecognized values.
func ParseSource(s string) (Source, bool) {
	for _, source := range Sources() {
		if string(source) == s {
			return source, true
		}
	}
	return SourceWebsite, false
}

// Lead represents a sales prospect record.
type Lead struct {
	LastContact time.Time  `json:"lastContact"`
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Company     string     `json:"company"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone,omitempty"`
	Owner       string     `json:"owner"`
	Status      Status     `json:"status"`
	Source      Source     `json:"source"`
	Tags        []string   `json:"tags"`
	Activities  []Activity `json:"activities"`
}

// HasTag reports whether the lead already carries the exact tag.
func (l *Lead) HasTag(tag string) bool {
	for _, t := range l.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// AddTag appends a tag unless it is already present. Insertion order is
// preserved for display. Returns true if the tag set changed.
func (l *Lead) AddTag(tag string) bool {
	if l.HasTag(tag) {
		return false
	}
	l.Tags = append(l.Tags, tag)
	return true
}

// LatestActivity returns the most recent activity entry, or nil if the
// timeline is empty. Activities are stored newest first.
func (l *Lead) LatestActivity() *Activity {
	if len(l.Activities) == 0 {
		return nil
	}
	return &l.Activities[0]
}
