package email

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"

	"hrms.service/internal/core"
	"hrms.service/internal/ports/messaging"
)

// WelcomeProcessor handles registration events from the welcome queue
// and sends the welcome email. A circuit breaker keeps a struggling SES
// (or LocalStack) from being hammered with doomed sends.
type WelcomeProcessor struct {
	emailService core.EmailService
	cb           *gobreaker.CircuitBreaker
}

// NewProcessor sets up a new processor for welcome-email jobs.
func NewProcessor(emailService core.EmailService) *WelcomeProcessor {
	settings := gobreaker.Settings{
		Name:        "SES-Welcome",
		MaxRequests: 5,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			// Trip if failure rate is bigger then 50% after at least 10 requests
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 10 && failureRatio >= 0.5
		},
	}

	return &WelcomeProcessor{
		emailService: emailService,
		cb:           gobreaker.NewCircuitBreaker(settings),
	}
}

// Process handles one message from the welcome queue. Send failures are
// retried through the queue's visibility timeout with exponential
// backoff based on how often the message has been received.
func (p *WelcomeProcessor) Process(ctx context.Context, msg types.Message) (bool, int32, error) {
	var event messaging.EmployeeRegisteredEvent
	if err := json.Unmarshal([]byte(*msg.Body), &event); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("Failed to unmarshal registration event")
		return false, 0, err // Do not retry on malformed message
	}

	log.Ctx(ctx).Info().
		Str("employee_id", event.EmployeeID).
		Str("employee_code", event.EmployeeCode).
		Msg("Sending welcome email")

	_, err := p.cb.Execute(func() (interface{}, error) {
		return nil, p.emailService.SendWelcome(ctx, event.Email, event.FullName, event.Department)
	})

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) {
			log.Ctx(ctx).Warn().Msg("Circuit Breaker is OPEN; skipping SES call")
		}
		delay := calculateBackoff(receiveCount(msg))
		return true, delay, err
	}

	return false, 0, nil
}

// receiveCount reads how many times SQS has delivered this message.
func receiveCount(msg types.Message) int {
	raw, ok := msg.Attributes[string(types.MessageSystemAttributeNameApproximateReceiveCount)]
	if !ok {
		return 1
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// calculateBackoff determines how long to wait before retrying a failed job.
// It increases the delay exponentially with each retry to avoid overwhelming a struggling service.
func calculateBackoff(retryCount int) int32 {
	backoff := int32(math.Pow(2, float64(retryCount)) * 10)
	if backoff > 3600 { // Cap at 1 hour
		return 3600
	}
	return backoff
}
