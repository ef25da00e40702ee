package genai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/crestpointmarketing/OneSource-Cloud-CRM/internal/common"
	"github.com/crestpointmarketing/OneSource-Cloud-CRM/internal/model"
)

// Fallback strings returned instead of errors.
const (
	summaryUnavailable = "Unable to generate summary at this time."
	summaryEmpty       = "No summary generated."
	draftUnavailable   = "Unable to generate draft."
	draftEmpty         = "Draft generation failed."
)

// Service turns leads into summaries and email drafts. A nil client puts
// the service in simulation mode, which still returns usable text.
type Service struct {
	client Client
}

// NewService wraps a client. client may be nil.
func NewService(client Client) *Service {
	return &Service{client: client}
}

// Simulated reports whether the service runs without a real provider.
func (s *Service) Simulated() bool {
	return s.client == nil
}

// Summarize produces a short relationship summary for a lead. It never
// fails: provider errors degrade to a fixed fallback string.
func (s *Service) Summarize(ctx context.Context, lead *model.Lead) string {
	if s.client == nil {
		return fmt.Sprintf(
			"Simulation: Provides a concise summary of the relationship with %s at %s. Enable API Key to generate real insights.",
			lead.Name, lead.Company)
	}

	activities, err := json.Marshal(lead.Activities)
	if err != nil {
		activities = []byte("[]")
	}

	prompt := fmt.Sprintf(`Summarize the current status and key activities for the following CRM lead.
Provide a concise 3-sentence summary for a sales representative.

Lead Name: %s
Company: %s
Status: %s
Source: %s
Last Contact: %s
Activities: %s`,
		lead.Name, lead.Company, lead.Status, lead.Source,
		lead.LastContact.Format(time.RFC3339), string(activities))

	text, err := s.generate(ctx, prompt)
	if err != nil {
		slog.Error("summary generation failed", "lead", lead.ID, "error", err)
		return summaryUnavailable
	}
	if text == "" {
		return summaryEmpty
	}
	return text
}

// DraftEmail produces a short outreach email in the requested tone. Like
// Summarize, it degrades to fallback text instead of failing.
func (s *Service) DraftEmail(ctx context.Context, lead *model.Lead, tone string) string {
	if s.client == nil {
		return fmt.Sprintf(
			"Subject: Following up\n\nHi %s,\n\nThis is a simulated AI draft based on your request for a %s email.\n\nBest,\nOneSource Team",
			lead.Name, tone)
	}

	lastActivity := "New inquiry"
	if latest := lead.LatestActivity(); latest != nil {
		lastActivity = latest.Content
	}

	prompt := fmt.Sprintf(`Draft a %s sales email to %s from %s.
The current lead status is %s.
Reference the last activity if applicable: %s.
Keep it professional and under 150 words.`,
		tone, lead.Name, lead.Company, lead.Status, lastActivity)

	text, err := s.generate(ctx, prompt)
	if err != nil {
		slog.Error("draft generation failed", "lead", lead.ID, "error", err)
		return draftUnavailable
	}
	if text == "" {
		return draftEmpty
	}
	return text
}

func (s *Service) generate(ctx context.Context, prompt string) (string, error) {
	var text string
	err := common.WithRetry(ctx, func() error {
		var genErr error
		text, genErr = s.client.GenerateContent(ctx, prompt)
		if genErr != nil && !common.IsRetryable(genErr) {
			return &common.RetryableError{Err: genErr, Retryable: false}
		}
		return genErr
	}, common.RetryOptions{
		MaxAttempts:  3,
		InitialDelay: 500 * time.Millisecond,
		MaxDelay:     5 * time.Second,
	})
	return text, err
}
