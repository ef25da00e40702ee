package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/crestpointmarketing/OneSource-Cloud-CRM/internal/common"
	"github.com/crestpointmarketing/OneSource-Cloud-CRM/internal/model"
)

// EmailPayload is the message body queued per lead. Rendering happens in
// the worker so queued messages survive template edits gracefully.
type EmailPayload struct {
	LeadID   string `json:"lead_id"`
	Name     string `json:"name"`
	Company  string `json:"company"`
	Email    string `json:"email"`
	Template string `json:"template,omitempty"`
}

// QueueDispatcher publishes one outreach message per lead.
type QueueDispatcher struct {
	ch       *amqp.Channel
	template string
}

// NewQueueDispatcher wraps an open channel. template names the email
// template the worker should render; empty means the worker's default.
func NewQueueDispatcher(ch *amqp.Channel, template string) *QueueDispatcher {
	return &QueueDispatcher{ch: ch, template: template}
}

// QueueEmails publishes a message per lead and returns how many were
// queued. The first publish failure aborts the batch.
func (d *QueueDispatcher) QueueEmails(ctx context.Context, leads []model.Lead) (int, error) {
	queued := 0
	for _, lead := range leads {
		payload := EmailPayload{
			LeadID:   lead.ID,
			Name:     lead.Name,
			Company:  lead.Company,
			Email:    lead.Email,
			Template: d.template,
		}
		body, err := json.Marshal(payload)
		if err != nil {
			return queued, fmt.Errorf("failed to encode payload for lead %s: %w", lead.ID, err)
		}

		err = d.ch.PublishWithContext(ctx,
			ExchangeName,
			RoutingKey,
			false, // mandatory
			false, // immediate
			amqp.Publishing{
				ContentType:  "application/json",
				Body:         body,
				DeliveryMode: amqp.Persistent,
			},
		)
		if err != nil {
			return queued, common.NewUserError("Failed to queue outreach emails.",
				fmt.Errorf("%w: lead %s: %v", common.ErrDispatchFailed, lead.ID, err))
		}
		queued++
	}

	slog.Info("queued outreach emails", "count", queued)
	return queued, nil
}

// SimulatedDispatcher stands in when no broker is configured. It imposes
// a short delay per lead to mimic queueing latency.
type SimulatedDispatcher struct {
	Delay time.Duration
}

// QueueEmails pretends to queue an email per lead.
func (d *SimulatedDispatcher) QueueEmails(ctx context.Context, leads []model.Lead) (int, error) {
	delay := d.Delay
	if delay == 0 {
		delay = 10 * time.Millisecond
	}

	for i, lead := range leads {
		select {
		case <-ctx.Done():
			return i, ctx.Err()
		case <-time.After(delay):
		}
		slog.Debug("simulated email queue", "lead", lead.ID, "email", lead.Email)
	}
	return len(leads), nil
}
