package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/crestpointmarketing/OneSource-Cloud-CRM/internal/common"
	"github.com/crestpointmarketing/OneSource-Cloud-CRM/internal/model"
	"github.com/crestpointmarketing/OneSource-Cloud-CRM/internal/service"
)

// Worker drains the outreach queue, renders each payload against an email
// template and hands the result to a Sender.
type Worker struct {
	ch         *amqp.Channel
	storage    service.Storage
	sender     Sender
	senderName string
}

// NewWorker wires a consumer over an open channel.
func NewWorker(ch *amqp.Channel, storage service.Storage, sender Sender, senderName string) *Worker {
	return &Worker{
		ch:         ch,
		storage:    storage,
		sender:     sender,
		senderName: senderName,
	}
}

// Run consumes until ctx is canceled. Malformed messages are rejected
// without requeue so they land on the DLQ instead of wedging the queue;
// delivery failures are rejected the same way.
func (w *Worker) Run(ctx context.Context) error {
	msgs, err := w.ch.Consume(
		QueueName,
		"",    // consumer tag
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	slog.Info("outreach worker started", "queue", QueueName)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			w.handle(ctx, d)
		}
	}
}

func (w *Worker) handle(ctx context.Context, d amqp.Delivery) {
	var payload EmailPayload
	if err := json.Unmarshal(d.Body, &payload); err != nil {
		common.LogError(err, "rejecting malformed outreach message", common.Fields{"queue": QueueName})
		_ = d.Nack(false, false)
		return
	}

	subject, body, err := w.render(ctx, payload)
	if err != nil {
		common.LogError(err, "failed to render outreach email", common.Fields{"lead": payload.LeadID})
		_ = d.Nack(false, false)
		return
	}

	if err := w.sender.Send(payload.Email, subject, body); err != nil {
		common.LogError(err, "failed to deliver outreach email", common.Fields{
			"lead": payload.LeadID,
			"to":   payload.Email,
		})
		_ = d.Nack(false, false)
		return
	}

	common.LogInfo("delivered outreach email", common.Fields{"lead": payload.LeadID, "to": payload.Email})
	_ = d.Ack(false)
}

func (w *Worker) render(ctx context.Context, payload EmailPayload) (subject, body string, err error) {
	templates, err := w.storage.GetTemplates(ctx)
	if err != nil {
		return "", "", err
	}
	if len(templates) == 0 {
		return "", "", fmt.Errorf("no email templates configured")
	}

	tmpl := templates[0]
	for i := range templates {
		if payload.Template != "" && templates[i].Name == payload.Template {
			tmpl = templates[i]
			break
		}
	}

	lead := model.Lead{ID: payload.LeadID, Name: payload.Name, Company: payload.Company, Email: payload.Email}
	subject, body = tmpl.Render(&lead, w.senderName)
	return subject, body, nil
}
