package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/crestpointmarketing/OneSource-Cloud-CRM/internal/model"
)

// Seed loads the demo dataset into an empty database. It refuses to run
// if any leads already exist, so it is safe to call on every startup.
func (s *SQLiteStorage) Seed(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM leads`).Scan(&count); err != nil {
		return fmt.Errorf("failed to check for existing leads: %w", err)
	}
	if count > 0 {
		slog.Debug("seed skipped, database not empty", "leads", count)
		return nil
	}

	if err := s.SaveLeads(ctx, seedLeads()); err != nil {
		return fmt.Errorf("failed to seed leads: %w", err)
	}
	for _, task := range seedTasks() {
		task := task
		if err := s.SaveTask(ctx, &task); err != nil {
			return fmt.Errorf("failed to seed tasks: %w", err)
		}
	}
	for _, tmpl := range seedTemplates() {
		tmpl := tmpl
		if err := s.SaveTemplate(ctx, &tmpl); err != nil {
			return fmt.Errorf("failed to seed templates: %w", err)
		}
	}

	slog.Info("seeded demo dataset")
	return nil
}

func seedLeads() []model.Lead {
	return []model.Lead{
		{
			ID:          "1",
			Name:        "Alice Freeman",
			Company:     "TechNova Solutions",
			Email:       "alice.f@technova.com",
			Phone:       "+1 (555) 123-4567",
			Status:      model.StatusEngaged,
			Source:      model.SourceWebsite,
			Tags:        []string{"Enterprise", "SaaS"},
			Owner:       "Sarah Johnson",
			LastContact: time.Date(2023, 10, 25, 14, 30, 0, 0, time.UTC),
			Activities: []model.Activity{
				{ID: "a1", Type: model.ActivityEmail, Content: "Sent introductory proposal", Timestamp: time.Date(2023, 10, 25, 14, 30, 0, 0, time.UTC), User: "Sarah Johnson"},
				{ID: "a2", Type: model.ActivityNote, Content: "Interested in the API integration features.", Timestamp: time.Date(2023, 10, 24, 10, 0, 0, 0, time.UTC), User: "Sarah Johnson"},
				{ID: "a3", Type: model.ActivityStatusChange, Content: "Changed status to Engaged", Timestamp: time.Date(2023, 10, 24, 9, 55, 0, 0, time.UTC), User: "System"},
			},
		},
		{
			ID:          "2",
			Name:        "Bob Smith",
			Company:     "Global Logistics",
			Email:       "bsmith@glogistics.net",
			Phone:       "+1 (555) 987-6543",
			Status:      model.StatusProposal,
			Source:      model.SourceLinkedIn,
			Tags:        []string{"Logistics", "High Value"},
			Owner:       "Mike Chen",
			LastContact: time.Date(2023, 10, 26, 9, 15, 0, 0, time.UTC),
			Activities: []model.Activity{
				{ID: "b1", Type: model.ActivityMeeting, Content: "Demo with procurement team", Timestamp: time.Date(2023, 10, 26, 9, 15, 0, 0, time.UTC), User: "Mike Chen"},
				{ID: "b2", Type: model.ActivityEmail, Content: "Sent pricing breakdown", Timestamp: time.Date(2023, 10, 20, 16, 0, 0, 0, time.UTC), User: "Mike Chen"},
			},
		},
		{
			ID:          "3",
			Name:        "Carol Danvers",
			Company:     "Stark Industries",
			Email:       "cdanvers@stark.com",
			Status:      model.StatusNew,
			Source:      model.SourceReferral,
			Tags:        []string{"Defense", "Enterprise"},
			Owner:       "Sarah Johnson",
			LastContact: time.Date(2023, 10, 27, 11, 0, 0, 0, time.UTC),
			Activities: []model.Activity{
				{ID: "c1", Type: model.ActivityStatusChange, Content: "Lead Created", Timestamp: time.Date(2023, 10, 27, 11, 0, 0, 0, time.UTC), User: "System"},
				{ID: "c2", Type: model.ActivityEmail, Content: "Automated Welcome Email Sent", Timestamp: time.Date(2023, 10, 27, 11, 1, 0, 0, time.UTC), User: "System"},
			},
		},
		{
			ID:          "4",
			Name:        "David Kim",
			Company:     "NextGen AI",
			Email:       "dkim@nextgen.ai",
			Phone:       "+1 (415) 555-0199",
			Status:      model.StatusQualification,
			Source:      model.SourceEvent,
			Tags:        []string{"Startup", "AI"},
			Owner:       "Alex Roe",
			LastContact: time.Date(2023, 10, 23, 15, 45, 0, 0, time.UTC),
		},
		{
			ID:          "5",
			Name:        "Eva Green",
			Company:     "Green Earth",
			Email:       "eva@greenearth.org",
			Status:      model.StatusWon,
			Source:      model.SourceWebsite,
			Tags:        []string{"Non-Profit"},
			Owner:       "Sarah Johnson",
			LastContact: time.Date(2023, 10, 22, 10, 0, 0, 0, time.UTC),
		},
	}
}

func seedTasks() []model.Task {
	return []model.Task{
		{
			ID:              "t1",
			Title:           "Follow up with Alice regarding proposal",
			DueDate:         time.Date(2023, 10, 28, 0, 0, 0, 0, time.UTC),
			AssignedTo:      "Sarah Johnson",
			RelatedLeadID:   "1",
			RelatedLeadName: "Alice Freeman",
			Priority:        model.PriorityHigh,
		},
		{
			ID:         "t2",
			Title:      "Prepare Q4 Report",
			DueDate:    time.Date(2023, 10, 30, 0, 0, 0, 0, time.UTC),
			AssignedTo: "Sarah Johnson",
			Priority:   model.PriorityMedium,
		},
		{
			ID:              "t3",
			Title:           "Call David Kim",
			DueDate:         time.Date(2023, 10, 29, 0, 0, 0, 0, time.UTC),
			Completed:       true,
			AssignedTo:      "Alex Roe",
			RelatedLeadID:   "4",
			RelatedLeadName: "David Kim",
			Priority:        model.PriorityLow,
		},
	}
}

func seedTemplates() []model.EmailTemplate {
	return []model.EmailTemplate{
		{
			ID:      "temp_1",
			Name:    "Initial Outreach",
			Subject: "Introduction to OneSource Cloud",
			Body: "Hi {{Customer Name}},\n\nI hope this email finds you well. I noticed that {{Company Name}} " +
				"is doing great work in the industry, and I wanted to reach out to introduce OneSource Cloud.\n\nBest,\n{{My Name}}",
		},
		{
			ID:      "temp_2",
			Name:    "Meeting Follow-up",
			Subject: "Great speaking with you today",
			Body: "Hi {{Customer Name}},\n\nThanks for taking the time to chat today. As discussed, I am attaching " +
				"the additional information regarding our enterprise plans.\n\nLet me know if you have any questions.\n\nBest,\n{{My Name}}",
		},
	}
}
