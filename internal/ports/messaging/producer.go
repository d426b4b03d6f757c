package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// QueueProducer publishes registration events to the welcome-email queue.
type QueueProducer struct {
	sender          MessageSender
	welcomeQueueURL string
}

func NewQueueProducer(sender MessageSender, welcomeQueueURL string) *QueueProducer {
	return &QueueProducer{
		sender:          sender,
		welcomeQueueURL: welcomeQueueURL,
	}
}

// NewSQSProducer wires a QueueProducer on top of the AWS SQS client.
func NewSQSProducer(client SQSClient, welcomeQueueURL string) *QueueProducer {
	return NewQueueProducer(&SQSSender{client: client}, welcomeQueueURL)
}

func (p *QueueProducer) PublishEmployeeRegistered(ctx context.Context, event EmployeeRegisteredEvent) error {
	b, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	// Enrich the current span with the employee identity
	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(
			attribute.String("app.employee_id", event.EmployeeID),
			attribute.String("app.employee_code", event.EmployeeCode),
		)
	}

	if err := p.sender.SendMessage(ctx, p.welcomeQueueURL, b); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}
